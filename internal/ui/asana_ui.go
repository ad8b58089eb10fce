package ui

import (
	"strconv"
	"strings"

	"yogaday/local-app/internal/model"
)

// AsanaList displays asanas as a table. Asanas listed in editing are highlighted.
func (u *UI) AsanaList(asanas []model.Asana, editing int64) {
	if len(asanas) == 0 {
		u.Info("No asanas to display")
		return
	}

	rows := make([][]string, 0, len(asanas))
	for i, a := range asanas {
		rows = append(rows, []string{
			strconv.FormatInt(a.ID, 10),
			strconv.Itoa(i),
			a.Name,
			strings.Join(a.Tags, ", "),
			imageMark(a.ImageURL),
		})
	}
	highlight := map[string]bool{strconv.FormatInt(editing, 10): editing != 0}
	u.Println(u.visualizer.Table([]string{"ID", "#", "Name", "Tags", "Image"}, rows, highlight))
}

// AsanaView displays every field of one asana
func (u *UI) AsanaView(a model.Asana) {
	v := u.visualizer
	u.Printf("%s %d\n", v.Label("Asana"), a.ID)
	u.Printf("%s %s\n", v.Label("Name: "), a.Name)
	u.Printf("%s %s\n", v.Label("Note: "), a.Note)
	u.Printf("%s %s\n", v.Label("Tags: "), strings.Join(a.Tags, ", "))
	u.Printf("%s %s\n", v.Label("Image:"), imageMark(a.ImageURL))
}

func imageMark(url string) string {
	switch {
	case url == "":
		return "-"
	case strings.HasPrefix(url, "data:"):
		mediaType, _, _ := strings.Cut(strings.TrimPrefix(url, "data:"), ";")
		return "embedded " + mediaType
	default:
		return url
	}
}
