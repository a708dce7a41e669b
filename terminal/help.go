package terminal

import (
	"fmt"
	"strings"
)

// HelpCategory groups related shortcuts.
type HelpCategory struct {
	Name     string
	Commands []HelpCommand
}

type HelpCommand struct {
	Key         string
	Description string
}

var helpCategories = []HelpCategory{
	{
		Name: "Mouse",
		Commands: []HelpCommand{
			{"drag", "Move an activity"},
			{"drag o", "Draw an arrow from a connection point"},
			{"click", "Select an activity or arrow"},
			{"right", "Drag to pan the view"},
			{"wheel", "Zoom around the pointer"},
		},
	},
	{
		Name: "Editing",
		Commands: []HelpCommand{
			{"n", "Add an activity at the pointer"},
			{"r/Enter", "Rename activity or label arrow"},
			{"a", "Cycle the activity's algorithm"},
			{"Del", "Delete the selection"},
			{"L", "Arrange activities automatically"},
			{"e", "Edit as JSON in $EDITOR"},
			{"u/^Z", "Undo"},
			{"^R/^Y", "Redo"},
		},
	},
	{
		Name: "View",
		Commands: []HelpCommand{
			{"+/-", "Zoom in/out"},
			{"f", "Fit the diagram"},
			{"p", "Toggle connection points"},
		},
	},
	{
		Name: "System",
		Commands: []HelpCommand{
			{"^S", "Save"},
			{"?", "Show this help"},
			{"q/^C", "Quit"},
		},
	},
}

// HelpText returns the help box drawn over the canvas.
func HelpText() string {
	var b strings.Builder
	b.WriteString("╔════════════════════════════════════════════════════╗\n")
	b.WriteString("║                    SADT HELP                       ║\n")
	b.WriteString("╠════════════════════════════════════════════════════╣\n")
	for i, cat := range helpCategories {
		b.WriteString(fmt.Sprintf("║ %-50s ║\n", cat.Name+":"))
		for _, cmd := range cat.Commands {
			b.WriteString(fmt.Sprintf("║   %-8s %-39s ║\n", cmd.Key, cmd.Description))
		}
		if i < len(helpCategories)-1 {
			b.WriteString("║                                                    ║\n")
		}
	}
	b.WriteString("╠════════════════════════════════════════════════════╣\n")
	b.WriteString("║ While renaming: Enter keeps, Esc cancels, ^W word  ║\n")
	b.WriteString("╚════════════════════════════════════════════════════╝\n")
	return b.String()
}

// CompactHelp returns the one-line hint shown in the status bar.
func CompactHelp() string {
	return "n:add r:rename a:algo del:delete e:json u:undo ^S:save ?:help q:quit"
}
