package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/gometeo/guide/internal/model"
)

const rule = "----------------------------------------"

// render печатает экран в терминал. Кликабельные строки помечаются [id],
// таблица ссылок в конце.
func render(w io.Writer, vm model.ViewModel) {
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%s  %s\n", vm.IconGlyph, vm.HeaderText)
	writeLine(w, vm.TempText)
	writeLine(w, vm.ConditionText)
	writeLine(w, vm.HumidityText)
	writeLine(w, vm.WindText)
	fmt.Fprintf(w, "theme: %s\n", vm.BackgroundColor)

	writeSection(w, "Activities", vm.ActivityLines)
	writeSection(w, "Event ideas", vm.EventIdeaLines)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Events")
	for _, seg := range vm.EventText {
		if seg.LinkID != "" {
			fmt.Fprintf(w, "%s [%s]\n", strings.TrimRight(seg.Text, "\n"), seg.LinkID)
			continue
		}
		fmt.Fprint(w, seg.Text)
	}

	if len(vm.EventEntries) > 0 {
		fmt.Fprintln(w, "Links")
		for _, e := range vm.EventEntries {
			fmt.Fprintf(w, "  %s  %s\n", e.ID, vm.Links[e.ID])
		}
	}
	fmt.Fprintln(w, rule)
}

func writeLine(w io.Writer, s string) {
	if s != "" {
		fmt.Fprintln(w, s)
	}
}

func writeSection(w io.Writer, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	for _, line := range lines {
		fmt.Fprintln(w, "  "+line)
	}
}
