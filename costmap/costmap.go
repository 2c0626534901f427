// Package costmap implements a 2D occupancy grid with world/map coordinate conversion.
package costmap

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Cost values stored in the grid. Anything other than FreeSpace blocks travel.
const (
	// FreeSpace marks a traversable cell.
	FreeSpace = byte(0)

	// LethalObstacle marks a cell occupied by an obstacle.
	LethalObstacle = byte(254)

	// NoInformation marks a cell with unknown contents.
	NoInformation = byte(255)
)

// Costmap is a 2D grid of cell costs anchored in world coordinates. Cell (0,0) sits at
// the world origin; cells are square with side length Resolution.
type Costmap struct {
	sizeX      uint
	sizeY      uint
	resolution float64
	originX    float64
	originY    float64
	costs      []byte
}

// New creates a costmap of the given dimensions with every cell free.
func New(sizeX, sizeY uint, resolution, originX, originY float64) (*Costmap, error) {
	if sizeX == 0 || sizeY == 0 {
		return nil, errors.New("costmap dimensions must be nonzero")
	}
	if resolution <= 0 {
		return nil, errors.Errorf("costmap resolution must be positive, got %f", resolution)
	}
	return &Costmap{
		sizeX:      sizeX,
		sizeY:      sizeY,
		resolution: resolution,
		originX:    originX,
		originY:    originY,
		costs:      make([]byte, sizeX*sizeY),
	}, nil
}

// NewFromImage builds a costmap from a map image. The image is converted to grayscale;
// pixels darker than threshold become lethal obstacles and all others are free. Image
// row 0 is the top of the map, i.e. the highest y cell row.
func NewFromImage(img image.Image, resolution, originX, originY float64, threshold uint8) (*Costmap, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	cm, err := New(uint(width), uint(height), resolution, originX, originY)
	if err != nil {
		return nil, errors.Wrap(err, "cannot build costmap from image")
	}
	// imaging normalizes the result to a zero-origin rectangle
	gray := imaging.Grayscale(img)
	for py := 0; py < height; py++ {
		for px := 0; px < width; px++ {
			// any channel works after grayscale conversion
			v := gray.NRGBAAt(px, py).R
			if v < threshold {
				cm.SetCost(uint(px), uint(height-1-py), LethalObstacle)
			}
		}
	}
	return cm, nil
}

// SizeInCellsX returns the number of cells along the x axis.
func (cm *Costmap) SizeInCellsX() uint {
	return cm.sizeX
}

// SizeInCellsY returns the number of cells along the y axis.
func (cm *Costmap) SizeInCellsY() uint {
	return cm.sizeY
}

// Resolution returns the side length of a cell in world units.
func (cm *Costmap) Resolution() float64 {
	return cm.resolution
}

// OriginX returns the world x coordinate of the lower-left corner of cell (0,0).
func (cm *Costmap) OriginX() float64 {
	return cm.originX
}

// OriginY returns the world y coordinate of the lower-left corner of cell (0,0).
func (cm *Costmap) OriginY() float64 {
	return cm.originY
}

// GetCost returns the cost of the given cell. Out-of-range cells read as NoInformation.
func (cm *Costmap) GetCost(mx, my uint) byte {
	if mx >= cm.sizeX || my >= cm.sizeY {
		return NoInformation
	}
	return cm.costs[my*cm.sizeX+mx]
}

// SetCost assigns the cost of the given cell, ignoring out-of-range writes.
func (cm *Costmap) SetCost(mx, my uint, cost byte) {
	if mx >= cm.sizeX || my >= cm.sizeY {
		return
	}
	cm.costs[my*cm.sizeX+mx] = cost
}

// WorldToMap converts world coordinates to cell coordinates. The second return is false
// when the point lies outside the grid.
func (cm *Costmap) WorldToMap(wx, wy float64) (uint, uint, bool) {
	if wx < cm.originX || wy < cm.originY {
		return 0, 0, false
	}
	mx := uint((wx - cm.originX) / cm.resolution)
	my := uint((wy - cm.originY) / cm.resolution)
	if mx >= cm.sizeX || my >= cm.sizeY {
		return 0, 0, false
	}
	return mx, my, true
}

// MapToWorld returns the world coordinates of the center of the given cell.
func (cm *Costmap) MapToWorld(mx, my uint) (float64, float64) {
	wx := cm.originX + (float64(mx)+0.5)*cm.resolution
	wy := cm.originY + (float64(my)+0.5)*cm.resolution
	return wx, wy
}

// MaxX returns the world x coordinate of the grid's upper bound.
func (cm *Costmap) MaxX() float64 {
	return cm.originX + float64(cm.sizeX)*cm.resolution
}

// MaxY returns the world y coordinate of the grid's upper bound.
func (cm *Costmap) MaxY() float64 {
	return cm.originY + float64(cm.sizeY)*cm.resolution
}
