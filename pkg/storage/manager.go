package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/shashiranjanraj/souq/config"
)

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk = "local"
)

// Connect boots the local disk and, when S3_BUCKET is set, the s3 disk.
// STORAGE_DISK picks the default; choosing s3 without a working client fails.
func Connect(ctx context.Context) error {
	RegisterDisk("local", NewLocalDisk(config.StorageLocalRoot(), config.StorageURL()))

	name := config.StorageDefault()
	if config.StorageS3Bucket() != "" || name == "s3" {
		d, err := NewS3Disk(ctx)
		if err != nil {
			if name == "s3" {
				return err
			}
		} else {
			RegisterDisk("s3", d)
		}
	}

	return SetDefault(name)
}

// RegisterDisk installs d under name. Tests register in-memory disks here.
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	managerMu.Unlock()
}

// SetDefault selects the disk returned by Default.
func SetDefault(name string) error {
	managerMu.Lock()
	defer managerMu.Unlock()
	if _, ok := disks[name]; !ok {
		return fmt.Errorf("storage: disk %q is not configured", name)
	}
	defaultDisk = name
	return nil
}

// Use returns the named disk.
func Use(name string) (Disk, error) {
	managerMu.RLock()
	d, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: disk %q is not configured", name)
	}
	return d, nil
}

// Default returns the default disk, or nil before Connect/RegisterDisk.
func Default() Disk {
	managerMu.RLock()
	defer managerMu.RUnlock()
	return disks[defaultDisk]
}
