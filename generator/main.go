package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"evnet"

	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
	"github.com/urfave/cli"
)

func main() {
	if err := godotenv.Load(); err != nil {
		evnet.Log(3, "no .env file found, using flag defaults")
	}

	app := cli.NewApp()
	app.Name = "evnet-generator"
	app.Usage = "generate EV-network instances (network config, GA JSON, CPLEX DAT)"
	app.Flags = []cli.Flag{
		cli.IntFlag{Name: "nodes, n", Usage: "total number of nodes (>= 4)"},
		cli.IntFlag{Name: "customers, c", Value: -1, Usage: "number of customer nodes (default: 40% of total)"},
		cli.IntFlag{Name: "bss, b", Value: -1, Usage: "number of battery-swap stations (default: 20% of total)"},
		cli.Int64Flag{Name: "seed", Usage: "random seed (default: current time)"},
		cli.IntFlag{Name: "count", Value: 1, Usage: "number of instances to generate"},
		cli.IntFlag{Name: "minDegree", Value: evnet.DefaultMinDegree, Usage: "minimum edges per node"},
		cli.IntFlag{Name: "maxDegree", Value: evnet.DefaultMaxDegree, Usage: "maximum edges per node"},
		cli.Float64Flag{Name: "distMin", Value: envFloat("EVNET_DIST_MIN", 3.0), Usage: "lower bound of the edge distance draw (km)"},
		cli.Float64Flag{Name: "distMax", Value: envFloat("EVNET_DIST_MAX", 8.0), Usage: "upper bound of the edge distance draw (km)"},
		cli.Float64Flag{Name: "tfMin", Value: envFloat("EVNET_TF_MIN", 0.6), Usage: "lower bound of the traffic factor draw"},
		cli.Float64Flag{Name: "tfMax", Value: envFloat("EVNET_TF_MAX", 1.0), Usage: "upper bound of the traffic factor draw"},
		cli.BoolFlag{Name: "noMirror", Usage: "skip the depot-symmetry copy (D->1 taking D->2's values)"},
		cli.StringFlag{Name: "outputDir, o", Value: ".", Usage: "output directory"},
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

	total := c.Int("nodes")
	seed := c.Int64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cfg := evnet.DefaultGenConfig(total, seed)
	if v := c.Int("customers"); v >= 0 {
		cfg.NumCustomers = v
	}
	if v := c.Int("bss"); v >= 0 {
		cfg.NumBss = v
	}
	cfg.MinDegree = c.Int("minDegree")
	cfg.MaxDegree = c.Int("maxDegree")
	cfg.DistanceRange = [2]float64{c.Float64("distMin"), c.Float64("distMax")}
	cfg.TrafficRange = [2]float64{c.Float64("tfMin"), c.Float64("tfMax")}
	cfg.MirrorDepot = !c.Bool("noMirror")

	if err := cfg.Validate(); err != nil {
		return err
	}

	outDir := c.String("outputDir")
	count := c.Int("count")

	var bar *progressbar.ProgressBar
	if count > 1 {
		bar = progressbar.Default(int64(count), "generating")
	}

	system := collectSysInfo()
	for l := 0; l < count; l++ {
		runCfg := cfg
		runCfg.Seed = seed + int64(l)
		if err := generateOne(runCfg, outDir, system); err != nil {
			return err
		}
		if bar != nil {
			bar.Add(1)
		}
	}
	return nil
}

func generateOne(cfg evnet.GenConfig, outDir string, system evnet.SysInfo) error {
	base := fmt.Sprintf("%dc_%dbss_%dtotal", cfg.NumCustomers, cfg.NumBss, cfg.TotalNodes)

	inst, net, err := evnet.BuildInstance(cfg, base)
	if err != nil {
		return err
	}
	inst.System = system

	configPath := nextArtifactPath(outDir, base+"_network_config", ".txt")
	if err := os.WriteFile(configPath, []byte(evnet.RenderNetworkConfig(cfg, net)), 0644); err != nil {
		return err
	}

	example, err := evnet.RenderExample(inst)
	if err != nil {
		return err
	}
	examplePath := nextArtifactPath(outDir, base+"_example", ".txt")
	if err := os.WriteFile(examplePath, []byte(example), 0644); err != nil {
		return err
	}

	gaJson, err := json.MarshalIndent(evnet.NewGAPayload(&inst.Graph), "", "  ")
	if err != nil {
		return err
	}
	gaPath := nextArtifactPath(outDir, base, ".json")
	if err := os.WriteFile(gaPath, append(gaJson, '\n'), 0644); err != nil {
		return err
	}

	dat := evnet.RenderDAT(evnet.DefaultDATParams(cfg.TotalNodes), inst.Station, inst.Customer, inst.Matrices)
	datPath := nextArtifactPath(outDir, base, ".dat")
	if err := os.WriteFile(datPath, []byte(dat), 0644); err != nil {
		return err
	}

	instJson, err := json.MarshalIndent(inst, "", "\t")
	if err != nil {
		return err
	}
	instJson = []byte(evnet.SanitizeJsonArrayLineBreaks(string(instJson)))
	instPath := nextArtifactPath(outDir, base+"_instance", ".json")
	if err := os.WriteFile(instPath, instJson, 0644); err != nil {
		return err
	}

	evnet.Log(2, "Artifacts saved: %s, %s, %s, %s, %s\n", configPath, examplePath, gaPath, datPath, instPath)
	return nil
}

// nextArtifactPath keeps existing artifacts: the first free name among
// base.ext, base_v2.ext, base_v3.ext, ... wins.
func nextArtifactPath(dir, base, ext string) string {
	candidate := filepath.Join(dir, base+ext)
	if _, err := os.Stat(candidate); os.IsNotExist(err) {
		return candidate
	}
	for version := 2; ; version++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s_v%d%s", base, version, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

func collectSysInfo() evnet.SysInfo {
	hostStat, _ := host.Info()
	cpuStat, _ := cpu.Info()
	vmStat, _ := mem.VirtualMemory()
	info := evnet.SysInfo{}
	if hostStat != nil {
		info.Platform = hostStat.Platform
	}
	if len(cpuStat) > 0 {
		info.CPU = cpuStat[0].ModelName
	}
	if vmStat != nil {
		info.RAM = fmt.Sprintf("%d GB", vmStat.Total/1024/1024/1024)
	}
	return info
}

func envFloat(name string, def float64) float64 {
	if v := os.Getenv(name); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
