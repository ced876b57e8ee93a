package main

import (
	"flag"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/23skdu/longbow-quiver/internal/npy"
)

var statsFlag = flag.Bool("stats", true, "Compute summary statistics for each array")

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		log.Fatalf("usage: quiver-inspect [-stats=false] file.npy [file.npz ...]")
	}

	for _, path := range flag.Args() {
		if strings.HasSuffix(path, ".npz") {
			inspectArchive(path)
			continue
		}
		a, err := npy.ReadFile(path)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", path, err)
		}
		fmt.Printf("\n=== %s ===\n", path)
		printArray(a)
	}
}

func inspectArchive(path string) {
	ar, err := npy.OpenArchive(path)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", path, err)
	}
	names := ar.Names()
	sort.Strings(names)
	fmt.Printf("\n=== %s (%d members) ===\n", path, len(names))
	for _, name := range names {
		a, err := ar.Get(name)
		if err != nil {
			log.Fatalf("Failed to read member %s: %v", name, err)
		}
		fmt.Printf("\n--- %s ---\n", name)
		printArray(a)
	}
}

func printArray(a *npy.Array) {
	fmt.Printf("Header:  %s\n", a.Header())
	fmt.Printf("DType:   %s (%s, %d bytes/elem)\n", a.DType, a.DType.Descr(), a.DType.Size())
	fmt.Printf("Shape:   %v\n", a.Shape)
	fmt.Printf("Order:   %s\n", a.Order())
	fmt.Printf("Data:    %d elements, %d bytes\n", a.NumElems(), len(a.Data))
	if *statsFlag {
		st, err := npy.ComputeStats(a)
		if err != nil {
			log.Fatalf("Failed to compute stats: %v", err)
		}
		fmt.Printf("Stats:   %s\n", st)
	}
}
