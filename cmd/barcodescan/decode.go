package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/spf13/cobra"

	"github.com/mlidesign/barcodescan/config"
	"github.com/mlidesign/barcodescan/core"
	"github.com/mlidesign/barcodescan/imageio"
	"github.com/mlidesign/barcodescan/log"
	"github.com/mlidesign/barcodescan/pipeline"
)

var (
	decodeConfigPath string
	decodeJSON       bool
	decodeVerbose    bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode <image> [image...]",
	Short: "Decode symbols out of one or more raster images",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDecode,
}

func init() {
	decodeCmd.Flags().StringVar(&decodeConfigPath, "config", "", "pipeline config YAML (default: built-in defaults)")
	decodeCmd.Flags().BoolVar(&decodeJSON, "json", false, "emit results as JSON")
	decodeCmd.Flags().BoolVar(&decodeVerbose, "verbose", false, "enable trace-level logging")
}

type fileResult struct {
	Path    string               `json:"path"`
	Error   string               `json:"error,omitempty"`
	Symbols []core.DecodedSymbol `json:"symbols,omitempty"`
}

func runDecode(cmd *cobra.Command, args []string) error {
	cfg := pipeline.DefaultConfig()
	if decodeConfigPath != "" {
		loaded, err := config.Load(decodeConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	var opts []pipeline.Option
	if decodeVerbose {
		opts = append(opts, pipeline.WithLogger(log.New()))
	}
	p := pipeline.New(cfg, opts...)

	results := make([]fileResult, len(args))

	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	if workers > len(args) {
		workers = len(args)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = decodeFile(p, args[i])
			}
		}()
	}
	for i := range args {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	anyFound := false
	for _, r := range results {
		if len(r.Symbols) > 0 {
			anyFound = true
		}
	}

	if decodeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("encoding results: %w", err)
		}
	} else {
		printResults(results)
	}

	if !anyFound {
		return fmt.Errorf("no symbols decoded")
	}
	return nil
}

func decodeFile(p *pipeline.Pipeline, path string) fileResult {
	f, err := os.Open(path)
	if err != nil {
		return fileResult{Path: path, Error: err.Error()}
	}
	defer f.Close()

	img, err := imageio.Load(f)
	if err != nil {
		return fileResult{Path: path, Error: err.Error()}
	}

	return fileResult{Path: path, Symbols: p.Decode(img)}
}

func printResults(results []fileResult) {
	for _, r := range results {
		if r.Error != "" {
			fmt.Printf("%s: error: %s\n", r.Path, r.Error)
			continue
		}
		if len(r.Symbols) == 0 {
			fmt.Printf("%s: no symbols found\n", r.Path)
			continue
		}
		for _, sym := range r.Symbols {
			fmt.Printf("%s: %s %q (confidence %.2f)\n", r.Path, sym.Symbology, sym.Text, sym.Confidence)
		}
	}
}
