package eidpatt_test

import (
	"fmt"
	"log"

	"github.com/thesyncim/eidpatt"
	"github.com/thesyncim/eidpatt/eid"
	"github.com/thesyncim/eidpatt/g192"
	"github.com/thesyncim/eidpatt/sink"
	"github.com/thesyncim/eidpatt/types"
)

func ExampleConverge() {
	req := eidpatt.Request{
		Mode:          types.ModeFrameErasure,
		Length:        1000,
		Start:         101,
		Rate:          0.05,
		Tolerance:     eidpatt.ToleranceDisabled,
		MaxIterations: 1,
		Format:        g192.FormatWide16,
	}
	src, err := eid.New(eid.Config{Mode: req.Mode, Rate: req.Rate})
	if err != nil {
		log.Fatal(err)
	}

	var out sink.Memory
	rep, err := eidpatt.Converge(req, src, &out)
	if err != nil {
		log.Fatal(err)
	}

	final := rep.Final()
	fmt.Printf("generated %d, processed %d, %d bytes\n", final.Generated, final.Processed, len(out.Bytes()))
	// Output: generated 1000, processed 900, 2000 bytes
}

func ExampleMinTolerance() {
	tol, err := eidpatt.MinTolerance(100, 1, 0.10)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%.7f\n", tol)
	// Output: 0.0010101
}

func ExampleQuantizeBurstRate() {
	index, rate, err := eidpatt.QuantizeBurstRate(0.017)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(index, rate)
	// Output: 3 0.015
}
