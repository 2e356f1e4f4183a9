package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"idleverse/internal/adapter/content/yamldir"
	"idleverse/internal/domain/content"
)

func main() {
	var dir string
	flag.StringVar(&dir, "dir", "./content", "content directory to lint")
	flag.Parse()

	packs, err := yamldir.LoadPacks(dir)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if _, err := content.NewStatic(packs...); err != nil {
		fmt.Fprintf(os.Stderr, "%s: invalid content\n%v\n", dir, err)
		os.Exit(1)
	}

	var c counts
	for _, p := range packs {
		c.add(p)
	}
	fmt.Printf("%s: ok (%d files, %s)\n", dir, len(packs), c)
}

type counts struct {
	skills    int
	items     int
	actions   int
	monsters  int
	areas     int
	obstacles int
	crops     int
	plots     int
	stations  int
	town      bool
}

func (c *counts) add(p content.Pack) {
	c.skills += len(p.Skills)
	c.items += len(p.Items)
	c.actions += len(p.Actions)
	c.monsters += len(p.Monsters)
	c.areas += len(p.Areas)
	c.obstacles += len(p.Obstacles)
	c.crops += len(p.Crops)
	c.plots += len(p.Plots)
	c.stations += len(p.Stations)
	if p.Town != nil {
		c.town = true
	}
}

func (c counts) String() string {
	s := fmt.Sprintf("%d skills, %d items, %d actions, %d monsters, %d areas, %d obstacles, %d crops, %d plots, %d stations",
		c.skills, c.items, c.actions, c.monsters, c.areas, c.obstacles, c.crops, c.plots, c.stations)
	if c.town {
		s += ", town"
	}
	return s
}
