//go:build !test

package display

import (
	"os"

	"github.com/sqweek/dialog"
)

// AskForROM opens a native file picker filtered to .gb/.gbc and
// returns the bytes of the file the user chose, grounded on the
// teacher's pkg/display/fyne askForROM helper.
func AskForROM() ([]byte, error) {
	path, err := dialog.File().Filter("Game Boy ROMs (*.gb, *.gbc)", "gb", "gbc").Load()
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}
