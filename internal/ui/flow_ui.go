package ui

import (
	"fmt"
	"strconv"
	"strings"

	"yogaday/local-app/internal/model"
)

// FlowList displays flows as a table
func (u *UI) FlowList(flows []model.Flow, editing int64) {
	if len(flows) == 0 {
		u.Info("No flows to display")
		return
	}

	rows := make([][]string, 0, len(flows))
	for _, f := range flows {
		rows = append(rows, []string{
			strconv.FormatInt(f.ID, 10),
			f.Name,
			fmt.Sprintf("%d min", f.Duration),
			strconv.Itoa(len(f.AsanaIDs)),
			strings.Join(f.Tags, ", "),
		})
	}
	highlight := map[string]bool{strconv.FormatInt(editing, 10): editing != 0}
	u.Println(u.visualizer.Table([]string{"ID", "Name", "Duration", "Asanas", "Tags"}, rows, highlight))
}

// FlowView displays a flow and the asanas it still resolves to, in order
func (u *UI) FlowView(f model.Flow, asanas []model.Asana) {
	v := u.visualizer
	u.Printf("%s %d\n", v.Label("Flow"), f.ID)
	u.Printf("%s %s\n", v.Label("Name:       "), f.Name)
	u.Printf("%s %s\n", v.Label("Description:"), f.Description)
	u.Printf("%s %d min\n", v.Label("Duration:   "), f.Duration)
	u.Printf("%s %s\n", v.Label("Tags:       "), strings.Join(f.Tags, ", "))

	if len(asanas) == 0 {
		u.Info("Drag asanas here to build your flow")
		return
	}
	rows := make([][]string, 0, len(asanas))
	for i, a := range asanas {
		rows = append(rows, []string{strconv.Itoa(i), strconv.FormatInt(a.ID, 10), a.Name})
	}
	u.Println(v.Table([]string{"#", "ID", "Asana"}, rows, nil))
}

// MutationView describes the outcome of a drop
func (u *UI) MutationView(m model.Mutation) {
	switch m.Kind {
	case model.MutationAssign:
		u.Success(fmt.Sprintf("Asana %d added to flow %d", m.AsanaID, m.FlowID))
	case model.MutationReorder:
		u.Success(fmt.Sprintf("Asana moved from position %d to %d", m.From, m.To))
	default:
		u.Info("Nothing changed")
	}
}
