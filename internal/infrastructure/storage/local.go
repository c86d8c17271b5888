package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/zhihern080614/mochibay-backend/internal/application/ports"
)

// ReceiptsDir subdirectorio (y prefijo de key en S3) donde se guardan los comprobantes.
const ReceiptsDir = "receipts"

// PublicPrefix ruta HTTP bajo la que se sirve la raíz local.
const PublicPrefix = "/uploads"

var _ ports.ReceiptStore = (*LocalDisk)(nil)

// LocalDisk guarda comprobantes en disco bajo <root>/receipts y los expone en /uploads/receipts/.
type LocalDisk struct {
	root string
}

// NewLocalDisk crea el directorio de comprobantes si no existe.
func NewLocalDisk(root string) (*LocalDisk, error) {
	if err := os.MkdirAll(filepath.Join(root, ReceiptsDir), 0o755); err != nil {
		return nil, fmt.Errorf("storage/local: mkdir: %w", err)
	}
	return &LocalDisk{root: root}, nil
}

// Root devuelve la raíz que se sirve estáticamente.
func (d *LocalDisk) Root() string { return d.root }

// Save escribe el archivo y devuelve su ruta pública (/uploads/receipts/<name>).
func (d *LocalDisk) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) || strings.HasPrefix(name, "..") {
		return "", fmt.Errorf("storage/local: nombre inválido %q", name)
	}
	full := filepath.Join(d.root, ReceiptsDir, name)
	// O_EXCL: nunca sobrescribir un comprobante existente
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("storage/local: create %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(full)
		return "", fmt.Errorf("storage/local: write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("storage/local: close %s: %w", name, err)
	}
	return PublicPrefix + "/" + ReceiptsDir + "/" + name, nil
}

// Remove borra <root>/receipts/<name>; un archivo inexistente no es error.
func (d *LocalDisk) Remove(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) || strings.HasPrefix(name, "..") {
		return fmt.Errorf("storage/local: nombre inválido %q", name)
	}
	if err := os.Remove(filepath.Join(d.root, ReceiptsDir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage/local: remove %s: %w", name, err)
	}
	return nil
}
