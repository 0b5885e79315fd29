package main

import (
	"encoding/json"
	"math/rand"
	"os"
	"time"

	"evnet"

	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "evnet-traffic"
	app.Usage = "redraw the traffic factors of an existing instance and recompute its derived matrices"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "input, i", Value: "instance.json", Usage: "path to the instance artifact"},
		cli.StringFlag{Name: "output, o", Usage: "output path (default: overwrite the input)"},
		cli.StringFlag{Name: "dat", Usage: "also rewrite the DAT file at this path"},
		cli.Float64Flag{Name: "tfMin", Value: 0.6, Usage: "lower bound of the new traffic factor draw"},
		cli.Float64Flag{Name: "tfMax", Value: 1.0, Usage: "upper bound of the new traffic factor draw"},
		cli.Int64Flag{Name: "seed", Usage: "random seed (default: current time)"},
		cli.IntFlag{Name: "log", Value: 2, Usage: "log verbosity, 1-4"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		evnet.Log(1, "%s\n", err.Error())
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	evnet.InitLoggers(c.Int("log"))

	input := c.String("input")
	raw, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	var inst evnet.Instance
	if err := json.Unmarshal(raw, &inst); err != nil {
		return err
	}

	seed := c.Int64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	tfRange := [2]float64{c.Float64("tfMin"), c.Float64("tfMax")}

	if err := evnet.RetuneTraffic(&inst, tfRange, rng); err != nil {
		return err
	}
	evnet.Log(2, "retuned %d edges of %s into [%.2f,%.2f]\n", len(inst.Graph.Edges), inst.Name, tfRange[0], tfRange[1])

	out, err := json.MarshalIndent(&inst, "", "\t")
	if err != nil {
		return err
	}
	out = []byte(evnet.SanitizeJsonArrayLineBreaks(string(out)))

	target := c.String("output")
	if target == "" {
		target = input // overwrite the input file
	}
	if err := os.WriteFile(target, out, 0644); err != nil {
		return err
	}

	if datPath := c.String("dat"); datPath != "" {
		dat := evnet.RenderDAT(evnet.DefaultDATParams(inst.NodeCount), inst.Station, inst.Customer, inst.Matrices)
		if err := os.WriteFile(datPath, []byte(dat), 0644); err != nil {
			return err
		}
	}
	return nil
}
