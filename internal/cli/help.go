package cli

import "fmt"

// CommandHelp represents the structure of help information for a specific command.
type CommandHelp struct {
	Scope     string
	Operation string
	ShortDesc string
	LongDesc  string
	Syntax    string
	Arguments []string
	Options   []string
	Examples  []string
}

// commandHelps is a slice of CommandHelp structs containing help information for all commands.
var commandHelps = []CommandHelp{
	{
		Scope:     "asana",
		Operation: "add",
		ShortDesc: "Create a new asana",
		LongDesc:  "Creates an asana card with placeholder content, puts it at the end of the library and opens it for editing.",
		Syntax:    "asana add",
		Examples:  []string{"asana add"},
	},
	{
		Scope:     "asana",
		Operation: "list",
		ShortDesc: "List asanas",
		LongDesc:  "Lists the asanas carrying every selected asana tag. With --all the tag filter is ignored.",
		Syntax:    "asana list [--all]",
		Options:   []string{"--all: Ignore the tag filter"},
		Examples:  []string{"asana list", "asana list --all"},
	},
	{
		Scope:     "asana",
		Operation: "show",
		ShortDesc: "Show one asana",
		LongDesc:  "Displays every field of an asana.",
		Syntax:    "asana show <id>",
		Arguments: []string{"id: The asana id"},
		Examples:  []string{"asana show 1718000000000"},
	},
	{
		Scope:     "asana",
		Operation: "update",
		ShortDesc: "Update asana fields",
		LongDesc:  "Changes the given fields. Tags replace the current tags and must be registered asana tags. The name may not be empty.",
		Syntax:    "asana update <id> [name=..] [note=..] [image=..] [tags=a,b]",
		Arguments: []string{"id: The asana id", "field=value: The fields to change. Quote values containing spaces"},
		Examples:  []string{`asana update 1718000000000 "name=Tree Pose" tags=standing,balance`},
	},
	{
		Scope:     "asana",
		Operation: "delete",
		ShortDesc: "Delete an asana",
		LongDesc:  "Removes the asana from the library. Flows keep their reference but no longer show it.",
		Syntax:    "asana delete <id>",
		Arguments: []string{"id: The asana id"},
		Examples:  []string{"asana delete 1718000000000"},
	},
	{
		Scope:     "asana",
		Operation: "move",
		ShortDesc: "Reorder the library",
		LongDesc:  "Moves the asana at one position of the library to another position.",
		Syntax:    "asana move <from> <to>",
		Arguments: []string{"from: Current position, starting at 0", "to: New position"},
		Examples:  []string{"asana move 0 3"},
	},
	{
		Scope:     "asana",
		Operation: "image",
		ShortDesc: "Attach an image file",
		LongDesc:  "Reads an image file in the background and embeds it into the asana once the read finishes.",
		Syntax:    "asana image <id> <path>",
		Arguments: []string{"id: The asana id", "path: An image file"},
		Examples:  []string{"asana image 1718000000000 ~/poses/tree.png"},
	},
	{
		Scope:     "asana",
		Operation: "edit",
		ShortDesc: "Start editing an asana",
		LongDesc:  "Remembers the current values of the asana so that 'asana cancel' can restore them.",
		Syntax:    "asana edit <id>",
		Arguments: []string{"id: The asana id"},
		Examples:  []string{"asana edit 1718000000000"},
	},
	{
		Scope:     "asana",
		Operation: "save",
		ShortDesc: "Finish editing",
		LongDesc:  "Keeps the values of the asana being edited.",
		Syntax:    "asana save",
		Examples:  []string{"asana save"},
	},
	{
		Scope:     "asana",
		Operation: "cancel",
		ShortDesc: "Discard the edit",
		LongDesc:  "Restores the values the asana had when editing started.",
		Syntax:    "asana cancel",
		Examples:  []string{"asana cancel"},
	},
	{
		Scope:     "flow",
		Operation: "add",
		ShortDesc: "Create a new flow",
		LongDesc:  "Creates an empty flow with placeholder content and opens it for editing.",
		Syntax:    "flow add",
		Examples:  []string{"flow add"},
	},
	{
		Scope:     "flow",
		Operation: "list",
		ShortDesc: "List flows",
		LongDesc:  "Lists the flows carrying every selected flow tag. With --all the tag filter is ignored.",
		Syntax:    "flow list [--all]",
		Options:   []string{"--all: Ignore the tag filter"},
		Examples:  []string{"flow list"},
	},
	{
		Scope:     "flow",
		Operation: "show",
		ShortDesc: "Show a flow and its asanas",
		LongDesc:  "Displays the flow fields and its asanas in order. Deleted asanas are skipped.",
		Syntax:    "flow show <id>",
		Arguments: []string{"id: The flow id"},
		Examples:  []string{"flow show 1718000000001"},
	},
	{
		Scope:     "flow",
		Operation: "update",
		ShortDesc: "Update flow fields",
		LongDesc:  "Changes the given fields. Duration is in minutes; negative or unreadable values become 0. Asanas replaces the whole sequence.",
		Syntax:    "flow update <id> [name=..] [description=..] [duration=..] [tags=a,b] [asanas=1,2]",
		Arguments: []string{"id: The flow id", "field=value: The fields to change"},
		Examples:  []string{`flow update 1718000000001 "name=Morning Flow" duration=20`},
	},
	{
		Scope:     "flow",
		Operation: "delete",
		ShortDesc: "Delete a flow",
		LongDesc:  "Removes the flow. Its asanas stay in the library.",
		Syntax:    "flow delete <id>",
		Arguments: []string{"id: The flow id"},
		Examples:  []string{"flow delete 1718000000001"},
	},
	{
		Scope:     "flow",
		Operation: "add-asana",
		ShortDesc: "Append an asana to a flow",
		LongDesc:  "Appends the asana to the end of the flow. Nothing happens when it is already a member.",
		Syntax:    "flow add-asana <flow-id> <asana-id>",
		Examples:  []string{"flow add-asana 1718000000001 1718000000000"},
	},
	{
		Scope:     "flow",
		Operation: "remove-asana",
		ShortDesc: "Remove an asana from a flow",
		LongDesc:  "Removes the asana at the given position of the flow sequence.",
		Syntax:    "flow remove-asana <flow-id> <index>",
		Examples:  []string{"flow remove-asana 1718000000001 0"},
	},
	{
		Scope:     "flow",
		Operation: "edit",
		ShortDesc: "Start editing a flow",
		LongDesc:  "Remembers the current values of the flow so that 'flow cancel' can restore them.",
		Syntax:    "flow edit <id>",
		Examples:  []string{"flow edit 1718000000001"},
	},
	{
		Scope:     "flow",
		Operation: "save",
		ShortDesc: "Finish editing",
		LongDesc:  "Keeps the values of the flow being edited.",
		Syntax:    "flow save",
		Examples:  []string{"flow save"},
	},
	{
		Scope:     "flow",
		Operation: "cancel",
		ShortDesc: "Discard the edit",
		LongDesc:  "Restores the values the flow had when editing started.",
		Syntax:    "flow cancel",
		Examples:  []string{"flow cancel"},
	},
	{
		Scope:     "tag",
		Operation: "add",
		ShortDesc: "Register a tag",
		LongDesc:  "Adds a tag to the asana or flow registry. Without a domain the current view decides.",
		Syntax:    "tag add [asana|flow] <name>",
		Examples:  []string{"tag add asana standing", `tag add flow "evening practice"`},
	},
	{
		Scope:     "tag",
		Operation: "rename",
		ShortDesc: "Rename a tag",
		LongDesc:  "Renames a tag in the registry, on every entity carrying it and in the filter selection.",
		Syntax:    "tag rename [asana|flow] <old> <new>",
		Examples:  []string{"tag rename asana standing upright"},
	},
	{
		Scope:     "tag",
		Operation: "remove",
		ShortDesc: "Remove a tag",
		LongDesc:  "Removes a tag from the registry, from every entity and from the filter selection. Asks for confirmation first.",
		Syntax:    "tag remove [asana|flow] <name> [--yes]",
		Options:   []string{"--yes: Skip the confirmation"},
		Examples:  []string{"tag remove asana standing", "tag remove flow morning --yes"},
	},
	{
		Scope:     "tag",
		Operation: "list",
		ShortDesc: "List tags",
		LongDesc:  "Lists the registry of a domain. Tags selected in the filter are shown in brackets.",
		Syntax:    "tag list [asana|flow]",
		Examples:  []string{"tag list", "tag list flow"},
	},
	{
		Scope:     "filter",
		Operation: "toggle",
		ShortDesc: "Select or deselect a tag",
		LongDesc:  "Adds the tag to the filter selection or removes it when already selected. Lists show entities carrying every selected tag.",
		Syntax:    "filter toggle [asana|flow] <tag>",
		Examples:  []string{"filter toggle asana standing"},
	},
	{
		Scope:     "filter",
		Operation: "clear",
		ShortDesc: "Clear the selection",
		LongDesc:  "Deselects every tag of the domain.",
		Syntax:    "filter clear [asana|flow]",
		Examples:  []string{"filter clear flow"},
	},
	{
		Scope:     "filter",
		Operation: "show",
		ShortDesc: "Show both selections",
		LongDesc:  "Displays the tag registries of both domains with their selected tags.",
		Syntax:    "filter show",
		Examples:  []string{"filter show"},
	},
	{
		Scope:     "drop",
		ShortDesc: "Drop an asana somewhere",
		LongDesc:  "Finishes a drag of an asana. Dropping on a flow appends it; dropping on another asana moves it to that asana's position.",
		Syntax:    "drop <asana-id> flow:<flow-id>|asana:<asana-id>|none",
		Examples:  []string{"drop 1718000000000 flow:1718000000001", "drop 1718000000000 asana:1718000000002"},
	},
	{
		Scope:     "view",
		ShortDesc: "Switch view",
		LongDesc:  "Switches between the asana cards and the flows. The view is the default domain of tag and filter commands.",
		Syntax:    "view [cards|flows]",
		Examples:  []string{"view flows"},
	},
	{
		Scope:     "library",
		Operation: "export",
		ShortDesc: "Export the library",
		LongDesc:  "Writes asanas, flows and both tag registries to a file with a checksum.",
		Syntax:    "library export [file] [json|yaml]",
		Examples:  []string{"library export", "library export backup.yaml yaml"},
	},
	{
		Scope:     "library",
		Operation: "import",
		ShortDesc: "Import a library",
		LongDesc:  "Replaces the whole library with the contents of an export file. Invalid files leave the library untouched.",
		Syntax:    "library import <file> [json|yaml]",
		Examples:  []string{"library import yoga-data.json"},
	},
	{
		Scope:     "system",
		Operation: "status",
		ShortDesc: "Show a summary",
		LongDesc:  "Displays the library counts, the current view and what is being edited.",
		Syntax:    "system status",
		Examples:  []string{"system status"},
	},
	{
		Scope:     "system",
		Operation: "exit",
		ShortDesc: "Exit the program",
		LongDesc:  "Leaves the shell. Every change is already saved.",
		Syntax:    "exit",
		Examples:  []string{"exit", "system exit"},
	},
}

// printHelp prints the help message based on the provided arguments
func (c *CLI) printHelp(args []string) {
	switch len(args) {
	case 0:
		c.showGeneralHelp()
	case 1:
		c.showScopeHelp(args[0])
	case 2:
		c.showOperationHelp(args[0], args[1])
	default:
		c.ui.Warning("Invalid help command. Use 'help [scope] [operation]'")
	}
}

// showGeneralHelp displays an overview of all available commands grouped by scope
func (c *CLI) showGeneralHelp() {
	c.ui.Println("Command syntax: <scope> [operation] [arguments] [options]")
	c.ui.Println("\nAvailable commands:")
	currentScope := ""
	for _, cmd := range commandHelps {
		if cmd.Scope != currentScope {
			c.ui.Printf("\n%s:\n", cmd.Scope)
			currentScope = cmd.Scope
		}
		c.ui.Printf("  %-15s %s\n", cmd.Operation, cmd.ShortDesc)
	}
}

// showScopeHelp displays help information for all commands within a specific scope
func (c *CLI) showScopeHelp(scope string) {
	found := false
	for _, cmd := range commandHelps {
		if cmd.Scope != scope {
			continue
		}
		if !found {
			c.ui.Printf("Commands for %s:\n\n", scope)
			found = true
		}
		if cmd.Operation == "" {
			c.showOperationHelp(scope, "")
			continue
		}
		c.ui.Printf("%-15s %s\n", cmd.Operation, cmd.ShortDesc)
	}
	if !found {
		c.ui.Warning(fmt.Sprintf("No help found for %s", scope))
	}
}

// showOperationHelp displays detailed help information for a specific operation within a scope
func (c *CLI) showOperationHelp(scope, operation string) {
	for _, cmd := range commandHelps {
		if cmd.Scope == scope && cmd.Operation == operation {
			c.ui.Printf("Command: %s %s\n", scope, operation)
			c.ui.Printf("Description: %s\n", cmd.LongDesc)
			c.ui.Printf("Syntax: %s\n", cmd.Syntax)
			if len(cmd.Arguments) > 0 {
				c.ui.Println("Arguments:")
				for _, arg := range cmd.Arguments {
					c.ui.Printf("  %s\n", arg)
				}
			}
			if len(cmd.Options) > 0 {
				c.ui.Println("Options:")
				for _, opt := range cmd.Options {
					c.ui.Printf("  %s\n", opt)
				}
			}
			if len(cmd.Examples) > 0 {
				c.ui.Println("Examples:")
				for _, ex := range cmd.Examples {
					c.ui.Printf("  %s\n", ex)
				}
			}
			return
		}
	}
	c.ui.Warning(fmt.Sprintf("No help found for %s %s", scope, operation))
}
