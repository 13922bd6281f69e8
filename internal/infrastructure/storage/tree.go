package storage

import (
	"context"
	"fmt"

	"fboard/internal/domain/entity"
)

// CopyTree copies every file and directory of src into dst, recursively.
// Existing files in dst are overwritten.
func CopyTree(ctx context.Context, src, dst Dir) error {
	entries, err := src.Entries(ctx)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.Kind == KindDir {
			srcChild, err := src.Dir(ctx, entry.Name, false)
			if err != nil {
				return err
			}
			dstChild, err := dst.Dir(ctx, entry.Name, true)
			if err != nil {
				return err
			}
			if err := CopyTree(ctx, srcChild, dstChild); err != nil {
				return err
			}
			continue
		}

		data, _, err := ReadFile(ctx, src, entry.Name)
		if err != nil {
			return err
		}
		if err := WriteFile(ctx, dst, entry.Name, data); err != nil {
			return err
		}
	}
	return nil
}

// VerifyTree checks that every file of src exists in dst with the same size,
// recursively. Extra entries in dst are allowed.
func VerifyTree(ctx context.Context, src, dst Dir) error {
	entries, err := src.Entries(ctx)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.Kind == KindDir {
			srcChild, err := src.Dir(ctx, entry.Name, false)
			if err != nil {
				return err
			}
			dstChild, err := dst.Dir(ctx, entry.Name, false)
			if err != nil {
				return newError("verify", entry.Name, entity.ErrIOFailure, err)
			}
			if err := VerifyTree(ctx, srcChild, dstChild); err != nil {
				return err
			}
			continue
		}

		srcFile, err := src.File(ctx, entry.Name, false)
		if err != nil {
			return err
		}
		srcInfo, err := srcFile.Stat(ctx)
		if err != nil {
			return err
		}
		dstFile, err := dst.File(ctx, entry.Name, false)
		if err != nil {
			return newError("verify", entry.Name, entity.ErrIOFailure, err)
		}
		dstInfo, err := dstFile.Stat(ctx)
		if err != nil {
			return newError("verify", entry.Name, entity.ErrIOFailure, err)
		}
		if srcInfo.Size != dstInfo.Size {
			return newError("verify", entry.Name, entity.ErrIOFailure,
				fmt.Errorf("size mismatch: %d != %d", srcInfo.Size, dstInfo.Size))
		}
	}
	return nil
}
