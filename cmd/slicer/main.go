// slicer reads an STL model and writes a G-code program ready for an
// FDM printer, following the configuration options in a key=value
// settings file.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/MehmetBener/Slicer-Julia/pkg/config"
	"github.com/MehmetBener/Slicer-Julia/pkg/diag"
	"github.com/MehmetBener/Slicer-Julia/pkg/pipeline"
	"github.com/MehmetBener/Slicer-Julia/pkg/progress"
)

var (
	configPath = flag.String("config", "", "Path to a key=value settings file; unset options keep their defaults")
	outPath = flag.String("o", "", "Output G-code path; defaults to the input name with a.gcode extension")
	quiet = flag.Bool("quiet", false, "Suppress the progress bar")
)

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		log.Fatalf("Must supply exactly one input STL path")
	}
	inPath := flag.Arg(0)

	cfg := config.New()
	if *configPath != "" {
		loadConfig(*configPath, cfg)
	}

	in, err := os.Open(inPath)
	check("opening %q: %v", inPath, err)
	defer in.Close()

	out := resolveOutPath(inPath)
	outFile, err := os.Create(out)
	check("creating %q: %v", out, err)
	defer outFile.Close()

	therm := progress.Auto("slicing")
	if *quiet {
		therm = progress.NewNoop()
	}

	log.Printf("slicing %q -> %q", inPath, out)
	res, err := pipeline.Run(in, outFile, cfg, therm)
	check("slicing %q: %v", inPath, err)

	for _, d := range res.Diagnostics {
		log.Print(d)
	}
	log.Printf("wrote %d layers to %q (%d diagnostics)", res.NumLayers, out, len(res.Diagnostics))
}

func loadConfig(path string, cfg *config.Config) {
	f, err := os.Open(path)
	check("opening config %q: %v", path, err)
	defer f.Close()

	var sink diag.Sink
	err = config.Load(f, cfg, &sink)
	check("loading config %q: %v", path, err)

	for _, d := range sink.Items() {
		log.Print(d)
	}
}

func resolveOutPath(inPath string) string {
	if *outPath != "" {
		return *outPath
	}
	return strings.TrimSuffix(inPath, filepath.Ext(inPath)) + ".gcode"
}

func check(fmtStr string, args...interface{}) {
	err := args[len(args)-1]
	if err != nil {
		log.Fatalf(fmtStr, args...)
	}
}
