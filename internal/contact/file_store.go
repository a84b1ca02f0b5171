package contact

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tartampluch/go-contactinfo/internal/config"
)

// OpenFileStore loads the address book at path and returns a MemoryStore that
// rewrites the file after every mutation. A missing file starts an empty book.
func OpenFileStore(path string) (*MemoryStore, error) {
	var contacts []Contact

	f, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// First run: the file is created by the first commit.
	case err != nil:
		return nil, fmt.Errorf("%s: %w", config.ErrStoreLoad, err)
	default:
		contacts, err = DecodeVCards(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrStoreLoad, err)
		}
	}

	slog.Info(config.MsgStoreLoaded,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyFile, path,
		config.LogKeyCount, len(contacts))

	return NewMemoryStore(vcardFileCommit(path), contacts...), nil
}

// vcardFileCommit writes to a temp file in the same directory and renames it over path,
// so readers never observe a half-written address book.
func vcardFileCommit(path string) CommitFunc {
	return func(contacts []Contact) error {
		var buf bytes.Buffer
		if err := EncodeVCards(&buf, contacts); err != nil {
			return err
		}

		dir := filepath.Dir(path)
		// Contacts are personal data: owner-only directory and file.
		if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
			return err
		}

		tmp, err := os.CreateTemp(dir, filepath.Base(path)+"*"+config.ExtTmp)
		if err != nil {
			return err
		}
		defer func() { _ = os.Remove(tmp.Name()) }() // no-op once renamed

		if _, err := tmp.Write(buf.Bytes()); err != nil {
			_ = tmp.Close()
			return err
		}
		if err := tmp.Chmod(config.FilePermUserRW); err != nil {
			_ = tmp.Close()
			return err
		}
		if err := tmp.Close(); err != nil {
			return err
		}
		// Rename is atomic on the same filesystem, hence the temp file in dir.
		if err := os.Rename(tmp.Name(), path); err != nil {
			return err
		}

		slog.Debug(config.MsgStoreCommit,
			config.LogKeyComponent, config.CompStore,
			config.LogKeyFile, path,
			config.LogKeySizeBytes, buf.Len())
		return nil
	}
}
