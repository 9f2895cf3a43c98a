package pointcloud

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// PCDType is the storage format of a pcd file.
type PCDType int

const (
	// PCDAscii ascii format for pcd.
	PCDAscii PCDType = 0
	// PCDBinary binary format for pcd.
	PCDBinary PCDType = 1
)

const pcdCommentChar = "#"

var pcdHeaderFields = []string{"VERSION", "FIELDS", "SIZE", "TYPE", "COUNT", "WIDTH", "HEIGHT", "VIEWPOINT", "POINTS", "DATA"}

type pcdHeader struct {
	size   []uint64
	types  []string
	count  []uint64
	width  uint64
	height uint64
	points uint64
	data   PCDType
}

func parsePCDHeaderLine(line string, index int, header *pcdHeader) error {
	var err error
	name := pcdHeaderFields[index]
	field, value, _ := strings.Cut(line, " ")
	tokens := strings.Split(value, " ")
	if field != name {
		return errors.Errorf("line is supposed to start with %s but is %s", name, line)
	}

	switch name {
	case "VERSION":
		if value != ".7" && value != "0.7" {
			return errors.Errorf("unsupported pcd version %s", value)
		}
	case "FIELDS":
		// only spatial data is consumed; anything after x y z is ignored.
		if !strings.HasPrefix(value, "x y z") {
			return errors.Errorf("unsupported pcd fields %q", value)
		}
	case "SIZE":
		header.size = make([]uint64, len(tokens))
		for i, token := range tokens {
			header.size[i], err = strconv.ParseUint(token, 10, 64)
			if err != nil {
				return errors.Errorf("invalid SIZE field %s", token)
			}
		}
		if len(header.size) < 3 || header.size[0] != 4 || header.size[1] != 4 || header.size[2] != 4 {
			return errors.Errorf("unsupported SIZE for spatial fields, expected 4 4 4 got %v", header.size)
		}
	case "TYPE":
		header.types = tokens
		if len(tokens) < 3 || tokens[0] != "F" || tokens[1] != "F" || tokens[2] != "F" {
			return errors.Errorf("unsupported TYPE for spatial fields, expected F F F got %v", tokens)
		}
	case "COUNT":
		header.count = make([]uint64, len(tokens))
		for i, token := range tokens {
			header.count[i], err = strconv.ParseUint(token, 10, 64)
			if err != nil {
				return errors.Errorf("invalid COUNT field %s", token)
			}
		}
	case "WIDTH":
		header.width, err = strconv.ParseUint(value, 10, 64)
		if err != nil {
			return errors.Errorf("invalid WIDTH field %s", value)
		}
	case "HEIGHT":
		header.height, err = strconv.ParseUint(value, 10, 64)
		if err != nil {
			return errors.Errorf("invalid HEIGHT field %s", value)
		}
	case "VIEWPOINT":
		if len(tokens) != 7 {
			return errors.Errorf("unexpected number of fields in VIEWPOINT line, expected 7 got %d", len(tokens))
		}
	case "POINTS":
		header.points, err = strconv.ParseUint(value, 10, 64)
		if err != nil {
			return errors.Errorf("invalid POINTS field %s", value)
		}
		if header.points != header.width*header.height {
			return errors.Errorf("POINTS field %d does not match WIDTH*HEIGHT %d", header.points, header.width*header.height)
		}
	case "DATA":
		switch value {
		case "ascii":
			header.data = PCDAscii
		case "binary":
			header.data = PCDBinary
		default:
			return errors.Errorf("unsupported pcd data format %q", value)
		}
	}
	return nil
}

// ReadPCD reads a pcd file into a PointCloud, keeping only point positions.
func ReadPCD(inRaw io.Reader) (*PointCloud, error) {
	header := pcdHeader{}
	in := bufio.NewReader(inRaw)
	headerLineCount := 0
	for headerLineCount < len(pcdHeaderFields) {
		line, err := in.ReadString('\n')
		if err != nil {
			return nil, errors.Wrapf(err, "error reading header line %d", headerLineCount)
		}
		line, _, _ = strings.Cut(line, pcdCommentChar)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := parsePCDHeaderLine(line, headerLineCount, &header); err != nil {
			return nil, err
		}
		headerLineCount++
	}
	switch header.data {
	case PCDAscii:
		return readPCDAscii(in, header)
	case PCDBinary:
		return readPCDBinary(in, header)
	default:
		return nil, errors.Errorf("unsupported pcd data type %v", header.data)
	}
}

func readPCDAscii(in *bufio.Reader, header pcdHeader) (*PointCloud, error) {
	cloud := NewWithPrealloc(int(header.points))
	for i := uint64(0); i < header.points; i++ {
		line, err := in.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		line = strings.TrimSpace(line)
		tokens := strings.Fields(line)
		if len(tokens) < 3 {
			return nil, errors.Errorf("unexpected number of fields on point line %d", i)
		}
		point := [3]float64{}
		for j := 0; j < 3; j++ {
			point[j], err = strconv.ParseFloat(tokens[j], 64)
			if err != nil {
				return nil, err
			}
		}
		cloud.Add(r3.Vector{X: point[0], Y: point[1], Z: point[2]})
	}
	return cloud, nil
}

func readPCDBinary(in *bufio.Reader, header pcdHeader) (*PointCloud, error) {
	var rowLen uint64
	for i, s := range header.size {
		count := uint64(1)
		if i < len(header.count) {
			count = header.count[i]
		}
		rowLen += s * count
	}
	if rowLen < 12 {
		return nil, errors.Errorf("unexpected binary pcd row length %d", rowLen)
	}
	cloud := NewWithPrealloc(int(header.points))
	row := make([]byte, rowLen)
	for i := uint64(0); i < header.points; i++ {
		if _, err := io.ReadFull(in, row); err != nil {
			return nil, errors.Wrapf(err, "error reading binary point %d", i)
		}
		point := [3]float64{}
		for j := 0; j < 3; j++ {
			bits := binary.LittleEndian.Uint32(row[j*4 : j*4+4])
			point[j] = float64(math.Float32frombits(bits))
		}
		cloud.Add(r3.Vector{X: point[0], Y: point[1], Z: point[2]})
	}
	return cloud, nil
}

// WritePCD writes the cloud out as an ascii pcd file.
func WritePCD(cloud *PointCloud, out io.Writer) error {
	if _, err := fmt.Fprintf(out, "VERSION .7\n"+
		"FIELDS x y z\n"+
		"SIZE 4 4 4\n"+
		"TYPE F F F\n"+
		"COUNT 1 1 1\n"+
		"WIDTH %d\n"+
		"HEIGHT 1\n"+
		"VIEWPOINT 0 0 0 1 0 0 0\n"+
		"POINTS %d\n"+
		"DATA ascii\n", cloud.Size(), cloud.Size()); err != nil {
		return err
	}
	var err error
	cloud.Iterate(func(v r3.Vector) bool {
		_, err = fmt.Fprintf(out, "%f %f %f\n", v.X, v.Y, v.Z)
		return err == nil
	})
	return err
}
