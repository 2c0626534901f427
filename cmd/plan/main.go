// Package main provides a command line tool for planning paths over map images.
package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/edaniels/golog"
	"github.com/fogleman/gg"
	"github.com/golang/geo/r3"

	"github.com/oxbotics/gridplan/costmap"
	"github.com/oxbotics/gridplan/motionplan"
)

func main() {
	if err := realMain(); err != nil {
		panic(err)
	}
}

func realMain() error {
	mapPath := flag.String("map", "", "map image; dark pixels are obstacles")
	resolution := flag.Float64("resolution", 0.1, "cell size in world units")
	originX := flag.Float64("origin-x", 0, "world x of the map's lower-left corner")
	originY := flag.Float64("origin-y", 0, "world y of the map's lower-left corner")
	threshold := flag.Uint("threshold", 128, "grayscale values below this are obstacles")
	startArg := flag.String("start", "", "start position as x,y")
	goalArg := flag.String("goal", "", "goal position as x,y")
	frame := flag.String("frame", "map", "global frame id")
	seed := flag.Int64("seed", -1, "random seed; negative for the default")
	iterations := flag.Int("iter", 0, "planner iterations; 0 for the default")
	out := flag.String("out", "plan.png", "rendered output image; empty to skip")
	verbose := flag.Bool("v", false, "verbose")
	flag.Parse()

	var logger golog.Logger
	if *verbose {
		logger = golog.NewDevelopmentLogger("plan")
	} else {
		logger = golog.NewLogger("plan")
	}

	if *mapPath == "" {
		return fmt.Errorf("need a map image, see -map")
	}
	start, err := parseXY(*startArg)
	if err != nil {
		return fmt.Errorf("bad -start: %w", err)
	}
	goal, err := parseXY(*goalArg)
	if err != nil {
		return fmt.Errorf("bad -goal: %w", err)
	}

	img, err := imaging.Open(*mapPath)
	if err != nil {
		return err
	}
	cm, err := costmap.NewFromImage(img, *resolution, *originX, *originY, uint8(*threshold))
	if err != nil {
		return err
	}
	logger.Infof("loaded %dx%d map at resolution %.3f", cm.SizeInCellsX(), cm.SizeInCellsY(), cm.Resolution())

	opts := motionplan.NewBasicPlannerOptions(*frame)
	if *iterations > 0 {
		opts.PlanIter = *iterations
	}
	if *seed >= 0 {
		opts.RandomSeed = *seed
	}

	mp, err := motionplan.NewRRTStarPlanner(cm, opts, logger)
	if err != nil {
		return err
	}

	path, err := mp.Plan(
		context.Background(),
		motionplan.PoseStamped{Frame: *frame, Pose: start},
		motionplan.PoseStamped{Frame: *frame, Pose: goal},
	)
	if err != nil {
		return err
	}
	if len(path.Poses) == 0 {
		return fmt.Errorf("planner rejected the request")
	}
	logger.Infof("planned %d waypoints, length %.3f", len(path.Poses), path.Length())

	if *out != "" {
		if err := render(cm, path, start, goal, *out); err != nil {
			return err
		}
		logger.Infof("wrote %s", *out)
	}
	return nil
}

func parseXY(s string) (r3.Vector, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return r3.Vector{}, fmt.Errorf("expected x,y but got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return r3.Vector{}, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return r3.Vector{}, err
	}
	return r3.Vector{X: x, Y: y}, nil
}

// render draws the costmap with the path overlaid and saves it as a PNG. World y grows
// upward while image y grows downward, so rows are flipped.
func render(cm *costmap.Costmap, path *motionplan.Path, start, goal r3.Vector, out string) error {
	const cellPx = 4

	width := int(cm.SizeInCellsX()) * cellPx
	height := int(cm.SizeInCellsY()) * cellPx
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetRGB(0.15, 0.15, 0.15)
	for my := uint(0); my < cm.SizeInCellsY(); my++ {
		for mx := uint(0); mx < cm.SizeInCellsX(); mx++ {
			if cm.GetCost(mx, my) != costmap.FreeSpace {
				py := int(cm.SizeInCellsY()-1-my) * cellPx
				dc.DrawRectangle(float64(int(mx)*cellPx), float64(py), cellPx, cellPx)
				dc.Fill()
			}
		}
	}

	toPixel := func(p r3.Vector) (float64, float64) {
		px := (p.X - cm.OriginX()) / cm.Resolution() * cellPx
		py := float64(height) - (p.Y-cm.OriginY())/cm.Resolution()*cellPx
		return px, py
	}

	dc.SetRGB(0.85, 0.1, 0.1)
	dc.SetLineWidth(2)
	for i := 1; i < len(path.Poses); i++ {
		x1, y1 := toPixel(path.Poses[i-1])
		x2, y2 := toPixel(path.Poses[i])
		dc.DrawLine(x1, y1, x2, y2)
	}
	dc.Stroke()

	sx, sy := toPixel(start)
	dc.SetRGB(0.1, 0.6, 0.1)
	dc.DrawCircle(sx, sy, 5)
	dc.Fill()

	gx, gy := toPixel(goal)
	dc.SetRGB(0.1, 0.1, 0.8)
	dc.DrawCircle(gx, gy, 5)
	dc.Fill()

	return dc.SavePNG(out)
}
