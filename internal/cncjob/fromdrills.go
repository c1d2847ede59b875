package cncjob

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kennycoder/flatcam-core/internal/excellon"
)

func fmtCoord(v float64) string { return fmt.Sprintf("%.4f", v) }

// selectDrills filters ex's drills to the requested tool ids, or
// returns all drills for the sentinel "all", preserving drill order.
func selectDrills(ex *excellon.Object, selection string) []excellon.Drill {
	if strings.TrimSpace(selection) == "all" {
		return ex.Drills()
	}
	wanted := make(map[int]bool)
	for _, tok := range strings.Split(selection, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		id, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		wanted[id] = true
	}
	var out []excellon.Drill
	for _, d := range ex.Drills() {
		if wanted[d.ToolID] {
			out = append(out, d)
		}
	}
	return out
}

// GenerateFromExcellonByTool emits a drilling job for the drills
// belonging to the comma-separated tool ids in selection (or "all").
// An empty resulting selection is a UsageError: no job is produced and
// the caller gets an error to surface to the user.
func GenerateFromExcellonByTool(ex *excellon.Object, selection string, zCut, zMove, feedrate float64) (*Object, error) {
	selected := selectDrills(ex, selection)
	if len(selected) == 0 {
		return nil, fmt.Errorf("cncjob: no drills selected for tool selection %q", selection)
	}

	job := &Object{
		Units:        ex.Units,
		ZCut:         zCut,
		ZMove:        zMove,
		Feedrate:     feedrate,
		StepsPerCirc: 64,
	}

	var b strings.Builder
	writePrologue(&b, job)
	for _, d := range selected {
		fmt.Fprintf(&b, "G00 X%sY%s\n", fmtCoord(d.X), fmtCoord(d.Y))
		fmt.Fprintf(&b, "G01 Z%s\n", fmtCoord(zCut))
		fmt.Fprintf(&b, "G01 Z%s\n", fmtCoord(zMove))
	}
	writeEpilogue(&b, job)

	job.GCode = b.String()
	job.GCodeParsed = ParseGCode(job.GCode, job.StepsPerCirc)
	return job, nil
}

func writePrologue(b *strings.Builder, job *Object) {
	if job.Units == "IN" {
		b.WriteString("G20\n")
	} else {
		b.WriteString("G21\n")
	}
	b.WriteString("G90\n")
	b.WriteString("G94\n")
	fmt.Fprintf(b, "F%.2f\n", job.Feedrate)
	fmt.Fprintf(b, "G00 Z%s\n", fmtCoord(job.ZMove))
	b.WriteString("M03\n")
	b.WriteString("G04 P1\n")
}

func writeEpilogue(b *strings.Builder, job *Object) {
	b.WriteString("G00 X0Y0\n")
	b.WriteString("M05\n")
	if job.Postamble != "" {
		b.WriteString(job.Postamble)
		if !strings.HasSuffix(job.Postamble, "\n") {
			b.WriteString("\n")
		}
	}
}
