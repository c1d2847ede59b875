// Command flatcamcore is a small demonstration CLI over the
// flatcam-core libraries: it parses a Gerber or Excellon file and,
// optionally, generates the corresponding CNC G-code job.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kennycoder/flatcam-core/internal/cncjob"
	"github.com/kennycoder/flatcam-core/internal/excellon"
	"github.com/kennycoder/flatcam-core/internal/gerber"
	"github.com/kennycoder/flatcam-core/internal/logging"
)

var (
	zCut      float64
	zMove     float64
	feedrate  float64
	tooldia   float64
	toolSel   string
	simplify  float64
	emitGCode bool
	dumpJSON  bool
	verbose   bool
)

func main() {
	flag.Float64Var(&zCut, "zcut", -0.1, "cutting/drilling depth")
	flag.Float64Var(&zMove, "zmove", 0.1, "travel height")
	flag.Float64Var(&feedrate, "feedrate", 5.0, "feed rate")
	flag.Float64Var(&tooldia, "tooldia", 0.0, "nominal tool diameter recorded on the job")
	flag.StringVar(&toolSel, "tools", "all", "comma-separated Excellon tool ids to drill, or \"all\"")
	flag.Float64Var(&simplify, "simplify", 0, "geometry simplification tolerance (0 disables)")
	flag.BoolVar(&emitGCode, "gcode", false, "also generate and write a .gcode file")
	flag.BoolVar(&dumpJSON, "json", false, "write the parsed object's ser_attrs as a .json file")
	flag.BoolVar(&verbose, "v", false, "verbose logging")
	flag.Parse()

	if verbose {
		logging.SetLevel(zerolog.DebugLevel)
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("Usage: flatcamcore [options] <path_to_gerber_or_excellon_file>")
		fmt.Println("Options:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	inputPath := args[0]
	ext := strings.ToLower(filepath.Ext(inputPath))
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))

	switch {
	case isExcellonExt(ext):
		runExcellon(inputPath, base)
	default:
		runGerber(inputPath, base)
	}

	fmt.Println("Done.")
}

func isExcellonExt(ext string) bool {
	switch ext {
	case ".drl", ".txt", ".xln", ".nc":
		return true
	default:
		return false
	}
}

func runGerber(inputPath, base string) {
	fmt.Printf("Parsing %s as Gerber...\n", inputPath)
	obj, err := gerber.ParseFile(inputPath)
	if err != nil {
		log.Fatalf("error parsing gerber: %v", err)
	}
	fmt.Printf("Found %d aperture(s), %d macro(s).\n", len(obj.Apertures()), len(obj.Macros()))

	if dumpJSON {
		writeJSON(base+".json", obj.SerAttrs())
	}

	if emitGCode {
		shape := obj.CreateGeometry()
		fmt.Println("Generating G-code from the solid region...")
		job := cncjob.GenerateFromGeometry(shape, obj.Units, zCut, zMove, feedrate, tooldia, 64, simplify)
		writeText(base+".gcode", job.GCode)
	}
}

func runExcellon(inputPath, base string) {
	fmt.Printf("Parsing %s as Excellon...\n", inputPath)
	obj, err := excellon.ParseFile(inputPath)
	if err != nil {
		log.Fatalf("error parsing excellon: %v", err)
	}
	fmt.Printf("Found %d tool(s), %d drill(s).\n", len(obj.Tools()), len(obj.Drills()))

	if dumpJSON {
		writeJSON(base+".json", obj.SerAttrs())
	}

	if emitGCode {
		fmt.Printf("Generating drill G-code for tools %q...\n", toolSel)
		job, err := cncjob.GenerateFromExcellonByTool(obj, toolSel, zCut, zMove, feedrate)
		if err != nil {
			log.Fatalf("error generating G-code: %v", err)
		}
		writeText(base+".gcode", job.GCode)
	}
}

func writeText(path, contents string) {
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		log.Fatalf("error writing %s: %v", path, err)
	}
	fmt.Printf("Wrote %s\n", path)
}

func writeJSON(path string, attrs map[string]any) {
	data, err := json.MarshalIndent(attrs, "", "  ")
	if err != nil {
		log.Fatalf("error encoding %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Fatalf("error writing %s: %v", path, err)
	}
	fmt.Printf("Wrote %s\n", path)
}
