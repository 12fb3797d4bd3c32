// Package detector locates a face in a grayscale camera frame, so that the
// face can steer the snow field instead of the mouse.
package detector

import (
	"errors"
	"fmt"
	"os"

	pigo "github.com/esimov/pigo/core"
)

// minQuality is the detection score under which a cluster is ignored.
const minQuality = 5.0

// ErrInvalidCascade is returned for cascade data too short to be a facefinder cascade.
var ErrInvalidCascade = errors.New("invalid facefinder cascade")

// Detector wraps an unpacked pigo facefinder cascade.
type Detector struct {
	classifier *pigo.Pigo
}

// New unpacks a facefinder cascade.
func New(cascade []byte) (*Detector, error) {
	// The cascade header alone is 16 bytes, pigo indexes it without checking.
	if len(cascade) < 16 {
		return nil, ErrInvalidCascade
	}
	p := pigo.NewPigo()
	// Unpack the binary file. This will return the number of cascade trees,
	// the tree depth, the threshold and the prediction from tree's leaf nodes.
	classifier, err := p.Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("unpacking the facefinder cascade: %w", err)
	}
	return &Detector{classifier: classifier}, nil
}

// Load reads and unpacks the facefinder cascade file at path.
func Load(path string) (*Detector, error) {
	cascade, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading the facefinder cascade: %w", err)
	}
	return New(cascade)
}

// Locate runs the cluster detection over a width x height grayscale frame
// and returns the center of the most confident face.
func (d *Detector) Locate(pixels []uint8, width, height int) (x, y float64, ok bool) {
	if width <= 0 || height <= 0 || len(pixels) != width*height {
		return 0, 0, false
	}

	dets := d.clusterDetection(pixels, width, height)

	best := -1
	for i, det := range dets {
		if det.Q < minQuality {
			continue
		}
		if best < 0 || det.Q > dets[best].Q {
			best = i
		}
	}
	if best < 0 {
		return 0, 0, false
	}
	return float64(dets[best].Col), float64(dets[best].Row), true
}

// clusterDetection runs the pigo face detector core methods
// and returns a cluster with the detected faces coordinates.
func (d *Detector) clusterDetection(pixels []uint8, width, height int) []pigo.Detection {
	maxSize := width
	if height < maxSize {
		maxSize = height
	}
	cParams := pigo.CascadeParams{
		MinSize:     20,
		MaxSize:     maxSize,
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		ImageParams: pigo.ImageParams{
			Pixels: pixels,
			Rows:   height,
			Cols:   width,
			Dim:    width,
		},
	}

	// Run the classifier over the obtained leaf nodes and return the detection results.
	// The result contains quadruplets representing the row, column, scale and detection score.
	dets := d.classifier.RunCascade(cParams, 0.0)

	// Calculate the intersection over union (IoU) of two clusters.
	return d.classifier.ClusterDetections(dets, 0.2)
}
