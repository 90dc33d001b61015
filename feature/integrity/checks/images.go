package checks

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"merch-manager/core/catalog"
	"merch-manager/core/storage"

	"github.com/minio/minio-go/v7"
)

// ImageIssue is a product whose recorded image object cannot be found.
type ImageIssue struct {
	ProductID string `json:"product_id"`
	Product   string `json:"product"`
	Key       string `json:"key"`
}

// ImageReport lists broken image references and folders of unknown products.
type ImageReport struct {
	Checked int          `json:"checked"`
	Missing []ImageIssue `json:"missing"`
	Orphans []string     `json:"orphans"`
}

// CheckImages stats every recorded product image and lists image folders
// whose product no longer exists in the catalog.
func CheckImages(ctx context.Context, client storage.Client, cfg storage.Config, entries []catalog.Entry) (*ImageReport, error) {
	report := &ImageReport{Missing: []ImageIssue{}, Orphans: []string{}}
	known := make(map[string]bool, len(entries))

	for _, e := range entries {
		known[e.Product.ProductID] = true
		if e.Product.Image == nil || *e.Product.Image == "" {
			continue
		}
		report.Checked++

		key := *e.Product.Image
		_, err := client.StatObject(ctx, cfg.Bucket, key, minio.StatObjectOptions{})
		switch {
		case storage.IsNotFound(err):
			report.Missing = append(report.Missing, ImageIssue{
				ProductID: e.Product.ProductID,
				Product:   e.Product.Name,
				Key:       key,
			})
		case err != nil:
			return nil, fmt.Errorf("failed to stat %s: %w", key, err)
		}
	}

	root := cfg.ProductFolder("")
	orphans := make(map[string]bool)
	opts := minio.ListObjectsOptions{Prefix: root, Recursive: true}
	for obj := range client.ListObjects(ctx, cfg.Bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", root, obj.Err)
		}
		rest := strings.TrimPrefix(obj.Key, root)
		id, _, nested := strings.Cut(rest, "/")
		if !nested || id == "" || known[id] {
			continue
		}
		orphans[path.Join(root, id)+"/"] = true
	}
	for folder := range orphans {
		report.Orphans = append(report.Orphans, folder)
	}
	sort.Strings(report.Orphans)

	return report, nil
}
