package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"evnet"
)

func main() {
	if len(os.Args) < 2 {
		log.Printf("No arguments passed!")
		return
	}
	dirName := os.Args[1]
	dir, err := os.ReadDir(dirName)
	if err != nil {
		log.Printf("Couldn't open directory %s: %s\n", dirName, err.Error())
		return
	}
	fmt.Printf("Name,Nodes,Customers,BSS,Edges,Connected,MeanDistance,MeanTrafficFactor\n")
	for _, f := range dir {
		if !strings.HasSuffix(f.Name(), "_instance.json") {
			continue
		}
		fileName := filepath.Join(dirName, f.Name())
		instStr, err := os.ReadFile(fileName)
		if err != nil {
			log.Printf("Couldn't read %s: %s\n", f.Name(), err.Error())
			return
		}
		inst := evnet.Instance{}
		if err = json.Unmarshal(instStr, &inst); err != nil {
			log.Printf("Couldn't parse %s: %s\n", f.Name(), err.Error())
			return
		}

		adj, err := evnet.NeighborListsFromDocument(&inst.Graph, inst.Labels)
		if err != nil {
			log.Printf("Bad graph in %s: %s\n", f.Name(), err.Error())
			continue
		}
		connected := evnet.ConnectedFromDepot(adj)

		var sumDist, sumTf float64
		for _, e := range inst.Graph.Edges {
			sumDist += e.Distance
			sumTf += e.TrafficFactor
		}
		edges := len(inst.Graph.Edges)
		meanDist, meanTf := 0.0, 0.0
		if edges > 0 {
			meanDist = sumDist / float64(edges)
			meanTf = sumTf / float64(edges)
		}
		fmt.Printf("%s,%d,%d,%d,%d,%t,%.2f,%.2f\n",
			inst.Name, inst.NodeCount, inst.NumCustomers, inst.NumBss, edges, connected, meanDist, meanTf)
	}
}
