package recorder

import (
	"os"
	"sync"

	json "github.com/goccy/go-json"
)

// Recorder 本地流水记录，结算审计用
type Recorder interface {
	Record(result any) error
}

// JSON 文件记录器，按行追加
type JSONFileRecorder struct {
	Path string
	mu   sync.Mutex
}

func NewJSONFileRecorder(path string) *JSONFileRecorder {
	return &JSONFileRecorder{Path: path}
}

func (r *JSONFileRecorder) Record(result any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := os.OpenFile(r.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	data = append(data, '\n')
	_, err = file.Write(data)
	return err
}
