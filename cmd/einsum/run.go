package main

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/born-ml/einsum/internal/einsum"
	"github.com/born-ml/einsum/internal/export"
	"github.com/born-ml/einsum/internal/serialization"
	"github.com/born-ml/einsum/internal/tensor"
)

func runCmd(args []string) {
	fs := newFlagSet("run")
	formula := fs.String("formula", "", "Einsum formula, e.g. ij,jk->ik")
	out := fs.String("out", "", "Write the result to this SafeTensors file")
	name := fs.String("name", "result", "Tensor name used with -out")
	csvPath := fs.String("csv", "", "Write the nonzero entries of the result as CSV")
	heatmap := fs.String("heatmap", "", "Render the first matrix slice of the result to this image (.png, .svg, .pdf)")
	slices := fs.Bool("slices", false, "Print the result as matrix slices instead of nonzero entries")
	_ = fs.Parse(args)

	if *formula == "" {
		log.Fatalf("run: -formula is required")
	}

	f, err := einsum.ParseFormula(*formula)
	if err != nil {
		log.Fatalf("run: %v", err)
	}

	operands := make([]*tensor.Tensor, 0, fs.NArg())
	for _, arg := range fs.Args() {
		t, err := loadOperand(arg)
		if err != nil {
			log.Fatalf("run: %v", err)
		}
		operands = append(operands, t)
	}

	result, err := f.Evaluate(operands...)
	if err != nil {
		log.Fatalf("run: %v", err)
	}

	if *slices {
		err = export.PrintSlices(os.Stdout, result)
	} else {
		err = export.PrintNonZero(os.Stdout, result)
	}
	if err != nil {
		log.Fatalf("run: %v", err)
	}

	if *out != "" {
		meta := map[string]string{"formula": f.String()}
		if err := serialization.WriteSafeTensors(*out, map[string]*tensor.Tensor{*name: result}, meta); err != nil {
			log.Fatalf("run: %v", err)
		}
		fmt.Printf("Saved %s to %s\n", *name, *out)
	}

	if *csvPath != "" {
		header := append(strings.Split(f.Output(), ""), "Value")
		if err := export.ExportRelationCSV(*csvPath, result, header, indexLabels(result.Shape())); err != nil {
			log.Fatalf("run: %v", err)
		}
		fmt.Printf("Saved relation table to %s\n", *csvPath)
	}

	if *heatmap != "" {
		lead := make([]int, max(result.Rank()-2, 0))
		opts := export.DefaultHeatmapOptions()
		opts.Title = f.String()
		if err := export.RenderHeatmap(*heatmap, result, lead, opts); err != nil {
			log.Fatalf("run: %v", err)
		}
		fmt.Printf("Saved heat map to %s\n", *heatmap)
	}
}

// loadOperand reads the tensor named by arg, which is either "path" for
// a file holding exactly one tensor or "path:name".
func loadOperand(arg string) (*tensor.Tensor, error) {
	path, name := arg, ""
	if i := strings.LastIndex(arg, ":"); i > 0 && i < len(arg)-1 {
		if _, err := os.Stat(arg); err != nil {
			path, name = arg[:i], arg[i+1:]
		}
	}

	tensors, _, err := serialization.ReadSafeTensors(path)
	if err != nil {
		return nil, err
	}

	if name != "" {
		t, ok := tensors[name]
		if !ok {
			return nil, fmt.Errorf("tensor %q not found in %s (have %s)", name, path, strings.Join(tensorNames(tensors), ", "))
		}
		return t, nil
	}

	if len(tensors) != 1 {
		return nil, fmt.Errorf("%s holds %d tensors, pick one with %s:NAME (have %s)",
			path, len(tensors), path, strings.Join(tensorNames(tensors), ", "))
	}
	for _, t := range tensors {
		return t, nil
	}
	return nil, nil
}

func tensorNames(tensors map[string]*tensor.Tensor) []string {
	names := make([]string, 0, len(tensors))
	for n := range tensors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// indexLabels labels every axis position with its index.
func indexLabels(shape tensor.Shape) [][]string {
	labels := make([][]string, len(shape))
	for axis, dim := range shape {
		labels[axis] = make([]string, dim)
		for i := range labels[axis] {
			labels[axis][i] = strconv.Itoa(i)
		}
	}
	return labels
}
