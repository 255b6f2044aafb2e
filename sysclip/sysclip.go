// Package sysclip moves tile clipboards through the system clipboard so
// blocks can be copied between editor windows.
package sysclip

import (
	"errors"
	"sync"

	"github.com/milk9111/tiledit/edit"
	"golang.design/x/clipboard"
)

var ErrUnavailable = errors.New("sysclip: system clipboard unavailable")

var (
	initOnce sync.Once
	initErr  error
)

// Init prepares the system clipboard. It is safe to call more than once;
// later calls return the first result.
func Init() error {
	initOnce.Do(func() {
		if err := clipboard.Init(); err != nil {
			initErr = errors.Join(ErrUnavailable, err)
		}
	})
	return initErr
}

// Export writes c to the system clipboard as text.
func Export(c edit.Clipboard) error {
	if err := Init(); err != nil {
		return err
	}
	data, err := edit.EncodeClipboard(c)
	if err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, data)
	return nil
}

// Import reads a tile clipboard back. Text that was not written by Export
// yields edit.ErrNotTiles.
func Import() (edit.Clipboard, error) {
	if err := Init(); err != nil {
		return edit.Clipboard{}, err
	}
	return edit.DecodeClipboard(clipboard.Read(clipboard.FmtText))
}
