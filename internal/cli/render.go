package cli

import (
	"fmt"
	"strconv"
	"strings"

	"yogaday/local-app/internal/model"
	"yogaday/local-app/internal/session"
)

// render displays a command result and reports whether it asks the shell to exit
func (c *CLI) render(result interface{}) bool {
	switch r := result.(type) {
	case nil:
	case session.ExitSignal:
		c.ui.Println("Goodbye!")
		return true
	case string:
		c.ui.Success(r)
	case model.Asana:
		c.ui.AsanaView(r)
	case []model.Asana:
		c.ui.AsanaList(r, 0)
	case model.Flow:
		c.ui.FlowList([]model.Flow{r}, r.ID)
	case []model.Flow:
		c.ui.FlowList(r, 0)
	case session.FlowDetail:
		c.ui.FlowView(r.Flow, r.Asanas)
	case session.TagListing:
		c.ui.TagList(string(r.Domain), r.Tags, r.Selected)
	case []session.TagListing:
		for _, l := range r {
			c.ui.TagList(string(l.Domain), l.Tags, l.Selected)
		}
	case model.Mutation:
		c.ui.MutationView(r)
	case model.View:
		c.ui.Info(fmt.Sprintf("Viewing %s", r))
	case session.Status:
		editing := "-"
		if len(r.Editing) > 0 {
			editing = strings.Join(r.Editing, ", ")
		}
		c.ui.KeyValues([][2]string{
			{"View", string(r.View)},
			{"Asanas", strconv.Itoa(r.Asanas)},
			{"Flows", strconv.Itoa(r.Flows)},
			{"Asana tags", strconv.Itoa(r.AsanaTags)},
			{"Flow tags", strconv.Itoa(r.FlowTags)},
			{"Editing", editing},
		})
	case model.ExportDocument:
		c.ui.Info(fmt.Sprintf("%d asanas, %d flows, checksum %s", len(r.Asanas), len(r.Flows), r.Checksum))
	default:
		c.ui.Printf("%v\n", r)
	}
	return false
}
