package hardware

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"github.com/jetsetilly/testfalcon/logger"
	"github.com/jetsetilly/testfalcon/resources"
)

// snapshots are stored in this directory under the resources path
const snapshotDir = "snapshots"

// Snapshot writes the state of the crossbar followed by the content of ST-RAM
// to w
func (con *Console) Snapshot(w io.Writer) error {
	con.crit.Lock()
	defer con.crit.Unlock()

	err := con.Crossbar.Snapshot(w)
	if err != nil {
		return err
	}
	return con.Mem.STRam.Snapshot(w)
}

// Restore the console from a snapshot created by Snapshot(). The console is
// unchanged if the snapshot can not be read
func (con *Console) Restore(r io.Reader) error {
	con.crit.Lock()
	defer con.crit.Unlock()

	var prev bytes.Buffer
	err := con.Crossbar.Snapshot(&prev)
	if err != nil {
		return err
	}

	err = con.Crossbar.Restore(r)
	if err != nil {
		return err
	}

	err = con.Mem.STRam.Restore(r)
	if err != nil {
		rerr := con.Crossbar.Restore(&prev)
		if rerr != nil {
			logger.Log(con.ctx, "snapshot", rerr)
		}
		return err
	}

	return nil
}

// SaveSnapshot saves a snapshot of the console with the name
func (con *Console) SaveSnapshot(name string) error {
	var b bytes.Buffer
	err := con.Snapshot(&b)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	err = resources.WriteBytes(filepath.Join(snapshotDir, name), b.Bytes())
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot restores the console from the snapshot with the name
func (con *Console) LoadSnapshot(name string) error {
	b, err := resources.ReadBytes(filepath.Join(snapshotDir, name))
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	err = con.Restore(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}
