package snapshot

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/o0olele/geocull/octree"
)

// Write encodes s to w, gzip compressed when compress is set.
func Write(w io.Writer, s *Snapshot, compress bool) error {
	// 验证数据完整性
	if err := s.Validate(); err != nil {
		return err
	}

	var gz *gzip.Writer
	if compress {
		gz = gzip.NewWriter(w)
		w = gz
	}

	header := FileHeader{Magic: FileMagic, Version: FileVersion}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, s.Bounds); err != nil {
		return fmt.Errorf("write bounds: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, s.Subdivide); err != nil {
		return fmt.Errorf("write subdivide: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, s.MinGeometries); err != nil {
		return fmt.Errorf("write min geometries: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, s.Transform); err != nil {
		return fmt.Errorf("write transform: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s.Items))); err != nil {
		return fmt.Errorf("write item count: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, s.Items); err != nil {
		return fmt.Errorf("write items: %w", err)
	}

	if gz != nil {
		if err := gz.Close(); err != nil {
			return fmt.Errorf("compress: %w", err)
		}
	}
	return nil
}

// Read decodes a snapshot written by Write. Compressed input is detected
// from the gzip magic bytes.
func Read(r io.Reader) (*Snapshot, error) {
	br := bufio.NewReader(r)
	if compressed, err := isGzip(br); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	} else if compressed {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("decompress: %w", err)
		}
		defer gz.Close()
		return readSnapshot(gz)
	}
	return readSnapshot(br)
}

func readSnapshot(r io.Reader) (*Snapshot, error) {
	// 读取文件头
	var header FileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if header.Magic != FileMagic {
		return nil, ErrBadMagic
	}
	if header.Version != FileVersion {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, header.Version)
	}

	s := &Snapshot{}
	if err := binary.Read(r, binary.LittleEndian, &s.Bounds); err != nil {
		return nil, fmt.Errorf("read bounds: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &s.Subdivide); err != nil {
		return nil, fmt.Errorf("read subdivide: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &s.MinGeometries); err != nil {
		return nil, fmt.Errorf("read min geometries: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &s.Transform); err != nil {
		return nil, fmt.Errorf("read transform: %w", err)
	}

	var itemCount uint32
	if err := binary.Read(r, binary.LittleEndian, &itemCount); err != nil {
		return nil, fmt.Errorf("read item count: %w", err)
	}
	// items are read one at a time so a corrupt count fails on EOF instead
	// of allocating it up front
	s.Items = make([]octree.Item, 0, min(itemCount, 1<<16))
	for i := uint32(0); i < itemCount; i++ {
		var item octree.Item
		if err := binary.Read(r, binary.LittleEndian, &item); err != nil {
			return nil, fmt.Errorf("read item %d: %w", i, err)
		}
		s.Items = append(s.Items, item)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func isGzip(br *bufio.Reader) (bool, error) {
	magic, err := br.Peek(2)
	if err != nil {
		return false, err
	}
	return magic[0] == 0x1f && magic[1] == 0x8b, nil
}

// Save writes s gzip compressed to filename.
func Save(s *Snapshot, filename string) error {
	var buf bytes.Buffer
	if err := Write(&buf, s, true); err != nil {
		return err
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// Load reads the snapshot stored in filename.
func Load(filename string) (*Snapshot, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// FileInfo 快照文件信息
type FileInfo struct {
	Filename  string    `json:"filename"`
	FileSize  int64     `json:"file_size"`
	Version   uint32    `json:"version"`
	ItemCount int       `json:"item_count"`
	ModTime   time.Time `json:"mod_time"`
}

// GetFileInfo loads filename and describes it.
func GetFileInfo(filename string) (*FileInfo, error) {
	stat, err := os.Stat(filename)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	s, err := Load(filename)
	if err != nil {
		return nil, err
	}
	return &FileInfo{
		Filename:  filename,
		FileSize:  stat.Size(),
		Version:   FileVersion,
		ItemCount: len(s.Items),
		ModTime:   stat.ModTime(),
	}, nil
}
