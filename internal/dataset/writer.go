package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteJSONL writes one compact JSON object per record, each terminated by "\n".
func WriteJSONL(w io.Writer, ds Dataset) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i, rec := range ds {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("%w: record %d: %v", ErrOutputWrite, i, err)
		}
	}
	return nil
}

// WriteFile creates (or truncates) path and writes ds to it as JSONL. An empty
// dataset still produces an empty file.
func WriteFile(path string, ds Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrOutputWrite, path, err)
	}

	bw := bufio.NewWriter(f)
	if err := WriteJSONL(bw, ds); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("%w: flush %s: %v", ErrOutputWrite, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", ErrOutputWrite, path, err)
	}
	return nil
}
