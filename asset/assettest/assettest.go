// Package assettest provides deterministic runners and in-memory fixtures
// for code that loads assets.
package assettest

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"sync"
)

// ManualRunner queues load jobs until the test runs them, so completions
// arrive exactly on the tick the test chooses.
type ManualRunner struct {
	mu   sync.Mutex
	jobs map[string][]func()
	seq  []string
}

func NewManualRunner() *ManualRunner {
	return &ManualRunner{jobs: make(map[string][]func())}
}

func (m *ManualRunner) Go(path string, job func()) {
	if job == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[path] = append(m.jobs[path], job)
	m.seq = append(m.seq, path)
}

// Run executes the queued jobs for path on the calling goroutine and reports
// how many ran.
func (m *ManualRunner) Run(path string) int {
	m.mu.Lock()
	jobs := m.jobs[path]
	delete(m.jobs, path)
	m.seq = removeAll(m.seq, path)
	m.mu.Unlock()

	for _, job := range jobs {
		job()
	}
	return len(jobs)
}

// RunAll executes every queued job in request order.
func (m *ManualRunner) RunAll() int {
	n := 0
	for {
		m.mu.Lock()
		if len(m.seq) == 0 {
			m.mu.Unlock()
			return n
		}
		path := m.seq[0]
		m.mu.Unlock()
		n += m.Run(path)
	}
}

// Queued returns the paths with pending jobs, in request order.
func (m *ManualRunner) Queued() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.seq...)
}

func removeAll(s []string, v string) []string {
	out := s[:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

// Doc is a minimal glTF JSON document.
type Doc map[string]any

// SceneDoc builds a document with one named scene holding a root node and
// one child per name in children. The default scene is that scene.
func SceneDoc(scene string, children ...string) Doc {
	nodes := []any{map[string]any{"name": scene + "_root", "mesh": 0}}
	var kids []int
	for i, name := range children {
		nodes = append(nodes, map[string]any{
			"name":        name,
			"translation": []float32{float32(i + 1), 0, 0},
		})
		kids = append(kids, i+1)
	}
	if len(kids) > 0 {
		nodes[0].(map[string]any)["children"] = kids
	}
	return Doc{
		"asset":  map[string]any{"version": "2.0"},
		"scene":  0,
		"scenes": []any{map[string]any{"name": scene, "nodes": []int{0}}},
		"nodes":  nodes,
		"meshes": []any{map[string]any{"name": scene + "_mesh"}},
	}
}

// GLTF encodes doc as a plain .gltf JSON file.
func GLTF(doc Doc) []byte {
	data, err := json.Marshal(doc)
	if err != nil {
		panic(err)
	}
	return data
}

// GLB wraps doc and an optional binary chunk in a GLB container.
func GLB(doc Doc, bin []byte) []byte {
	jsonData := pad(GLTF(doc), ' ')
	bin = pad(bin, 0)

	total := 12 + 8 + len(jsonData)
	if len(bin) > 0 {
		total += 8 + len(bin)
	}
	var buf bytes.Buffer
	write := func(v uint32) { _ = binary.Write(&buf, binary.LittleEndian, v) }
	write(0x46546C67)
	write(2)
	write(uint32(total))
	write(uint32(len(jsonData)))
	write(0x4E4F534A)
	buf.Write(jsonData)
	if len(bin) > 0 {
		write(uint32(len(bin)))
		write(0x004E4942)
		buf.Write(bin)
	}
	return buf.Bytes()
}

func pad(b []byte, fill byte) []byte {
	for len(b)%4 != 0 {
		b = append(b, fill)
	}
	return b
}

// WAV returns a 16-bit stereo PCM wave file at rate holding frames silent
// frames.
func WAV(rate, frames int) []byte {
	const channels, bits = 2, 16
	dataLen := frames * channels * bits / 8
	var buf bytes.Buffer
	w := func(v any) { _ = binary.Write(&buf, binary.LittleEndian, v) }
	buf.WriteString("RIFF")
	w(uint32(36 + dataLen))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	w(uint32(16))
	w(uint16(1))
	w(uint16(channels))
	w(uint32(rate))
	w(uint32(rate * channels * bits / 8))
	w(uint16(channels * bits / 8))
	w(uint16(bits))
	buf.WriteString("data")
	w(uint32(dataLen))
	buf.Write(make([]byte, dataLen))
	return buf.Bytes()
}
