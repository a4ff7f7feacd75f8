package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlidesign/barcodescan/core"
	"github.com/mlidesign/barcodescan/pipeline"
	"github.com/mlidesign/barcodescan/qr"
	"github.com/mlidesign/barcodescan/synth"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Synthesize sample symbols and decode them as a self-check",
	RunE:  runDemo,
}

type demoCase struct {
	name string
	want string
	img  func() (core.Image, error)
}

func runDemo(cmd *cobra.Command, args []string) error {
	cases := []demoCase{
		{
			name: "EAN-13",
			want: "4006381333931",
			img:  func() (core.Image, error) { return synth.EAN13("4006381333931", 3, 60) },
		},
		{
			name: "Code 128 (set B)",
			want: "Hello!",
			img:  func() (core.Image, error) { return synth.Code128("Hello!", synth.SetB, 3, 60) },
		},
		{
			name: "Code 128 (set C)",
			want: "12345678",
			img:  func() (core.Image, error) { return synth.Code128("12345678", synth.SetC, 3, 60) },
		},
		{
			name: "QR v1-L",
			want: "HELLO",
			img:  func() (core.Image, error) { return synth.QR("HELLO", qr.EcL, 0, 6) },
		},
	}

	p := pipeline.New(pipeline.DefaultConfig())

	failures := 0
	for _, c := range cases {
		img, err := c.img()
		if err != nil {
			fmt.Printf("FAIL  %-16s synthesis error: %v\n", c.name, err)
			failures++
			continue
		}
		results := p.Decode(img)
		if ok, got := demoFound(results, c.want); ok {
			fmt.Printf("PASS  %-16s decoded %q\n", c.name, got)
		} else {
			fmt.Printf("FAIL  %-16s want %q, got %v\n", c.name, c.want, results)
			failures++
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d/%d demo cases failed", failures, len(cases))
	}
	return nil
}

func demoFound(results []core.DecodedSymbol, want string) (bool, string) {
	for _, r := range results {
		if r.Text == want {
			return true, r.Text
		}
	}
	return false, ""
}
