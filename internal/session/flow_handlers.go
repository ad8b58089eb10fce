package session

import (
	"fmt"

	"yogaday/local-app/internal/model"
)

// FlowDetail is a flow with its membership resolved to asanas
type FlowDetail struct {
	Flow   model.Flow    `json:"flow"`
	Asanas []model.Asana `json:"asanas"`
}

// initFlowCommandHandlers initializes flow command handlers
func initFlowCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"add":          handleFlowAdd,
		"list":         handleFlowList,
		"show":         handleFlowShow,
		"update":       handleFlowUpdate,
		"delete":       handleFlowDelete,
		"add-asana":    handleFlowAsanaAdd,
		"remove-asana": handleFlowAsanaRemove,
		"edit":         handleFlowEdit,
		"save":         handleEditSave,
		"cancel":       handleEditCancel,
	}
}

// handleFlowAdd handles the flow add command
func handleFlowAdd(s *Session, cmd model.Command) (interface{}, error) {
	return s.DataManager.FlowAdd(), nil
}

// handleFlowList returns the flows passing the current tag filter, or all of them with --all
func handleFlowList(s *Session, cmd model.Command) (interface{}, error) {
	if cmd.HasFlag("--all") {
		return s.DataManager.FlowList(), nil
	}
	return s.DataManager.FilterFlows(), nil
}

// handleFlowShow handles the flow show command
func handleFlowShow(s *Session, cmd model.Command) (interface{}, error) {
	args := cmd.Positional()
	if len(args) != 1 {
		return nil, usage("flow show <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return nil, err
	}
	return flowDetail(s, id)
}

func flowDetail(s *Session, id int64) (FlowDetail, error) {
	flow, err := s.DataManager.FlowGet(id)
	if err != nil {
		return FlowDetail{}, err
	}
	asanas, err := s.DataManager.FlowAsanas(id)
	if err != nil {
		return FlowDetail{}, err
	}
	return FlowDetail{Flow: flow, Asanas: asanas}, nil
}

// handleFlowUpdate handles the flow update command
func handleFlowUpdate(s *Session, cmd model.Command) (interface{}, error) {
	args := cmd.Positional()
	if len(args) < 1 {
		return nil, usage("flow update <id> [name=..] [description=..] [duration=..] [tags=a,b] [asanas=1,2]")
	}
	id, err := parseID(args[0])
	if err != nil {
		return nil, err
	}

	patch, ok := cmd.Payload.(model.FlowPatch)
	if !ok {
		fields, err := parseFields(args[1:], "name", "description", "duration", "tags", "asanas")
		if err != nil {
			return nil, err
		}
		if patch, err = flowPatchFromFields(fields); err != nil {
			return nil, err
		}
	}

	flow, err := s.DataManager.FlowUpdate(id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update flow: %w", err)
	}
	return flow, nil
}

func flowPatchFromFields(fields map[string]string) (model.FlowPatch, error) {
	var patch model.FlowPatch
	if v, ok := fields["name"]; ok {
		patch.Name = &v
	}
	if v, ok := fields["description"]; ok {
		patch.Description = &v
	}
	if v, ok := fields["duration"]; ok {
		d := parseDuration(v)
		patch.Duration = &d
	}
	if v, ok := fields["tags"]; ok {
		patch.Tags = splitList(v)
	}
	if v, ok := fields["asanas"]; ok {
		patch.AsanaIDs = []int64{}
		for _, part := range splitList(v) {
			id, err := parseID(part)
			if err != nil {
				return model.FlowPatch{}, err
			}
			patch.AsanaIDs = append(patch.AsanaIDs, id)
		}
	}
	return patch, nil
}

// handleFlowDelete handles the flow delete command
func handleFlowDelete(s *Session, cmd model.Command) (interface{}, error) {
	args := cmd.Positional()
	if len(args) != 1 {
		return nil, usage("flow delete <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return nil, err
	}
	if err := s.DataManager.FlowDelete(id); err != nil {
		return nil, fmt.Errorf("failed to delete flow: %w", err)
	}
	return fmt.Sprintf("Flow %d deleted", id), nil
}

// handleFlowAsanaAdd handles the flow add-asana command
func handleFlowAsanaAdd(s *Session, cmd model.Command) (interface{}, error) {
	args := cmd.Positional()
	if len(args) != 2 {
		return nil, usage("flow add-asana <flow-id> <asana-id>")
	}
	flowID, err := parseID(args[0])
	if err != nil {
		return nil, err
	}
	asanaID, err := parseID(args[1])
	if err != nil {
		return nil, err
	}
	if _, err := s.DataManager.FlowAsanaAdd(flowID, asanaID); err != nil {
		return nil, fmt.Errorf("failed to add asana to flow: %w", err)
	}
	return flowDetail(s, flowID)
}

// handleFlowAsanaRemove removes the asana at a position of the flow
func handleFlowAsanaRemove(s *Session, cmd model.Command) (interface{}, error) {
	args := cmd.Positional()
	if len(args) != 2 {
		return nil, usage("flow remove-asana <flow-id> <index>")
	}
	flowID, err := parseID(args[0])
	if err != nil {
		return nil, err
	}
	index, err := parseIndex(args[1])
	if err != nil {
		return nil, err
	}
	if err := s.DataManager.FlowAsanaRemove(flowID, index); err != nil {
		return nil, fmt.Errorf("failed to remove asana from flow: %w", err)
	}
	return flowDetail(s, flowID)
}

// handleFlowEdit handles the flow edit command
func handleFlowEdit(s *Session, cmd model.Command) (interface{}, error) {
	return handleEditBegin(s, cmd, model.DomainFlow)
}
