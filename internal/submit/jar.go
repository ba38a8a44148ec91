package submit

import (
	"bytes"
	"context"
	"fmt"

	"github.com/mholt/archives"
)

// InspectJar verifies that the uploaded bytes are a readable zip archive (a
// jar file is a zip) and returns the number of entries it contains. The
// entries themselves are not extracted or kept.
func InspectJar(ctx context.Context, content []byte) (int, error) {
	var count int
	zip := archives.Zip{}
	err := zip.Extract(ctx, bytes.NewReader(content), func(ctx context.Context, f archives.FileInfo) error {
		count++
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to read jar archive: %w", err)
	}
	return count, nil
}
