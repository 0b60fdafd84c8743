package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farhanrmdhni/portfolio-backend/errs"
)

// fakeUploader implements ImageUploader with controllable per-file
// delays and failures, and records deletions for cleanup assertions.
type fakeUploader struct {
	mu       sync.Mutex
	delays   map[string]time.Duration
	failures map[string]error
	gate     chan struct{}
	deleted  []string
}

func (f *fakeUploader) UploadImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	delay := f.delays[filename]
	failure := f.failures[filename]
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if failure != nil {
		return "", failure
	}
	return "https://cdn.test/portofolios/portfolio-images/" + filename, nil
}

func (f *fakeUploader) DeleteImage(ctx context.Context, publicURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, publicURL)
	return nil
}

func pendingImage(name string) PendingImage {
	return PendingImage{Filename: name, ContentType: "image/png", Data: []byte(name)}
}

func TestGalleryCommitPreservesSelectionOrder(t *testing.T) {
	// The first selected file finishes last; the gallery must still list
	// it first.
	uploader := &fakeUploader{delays: map[string]time.Duration{
		"a.png": 60 * time.Millisecond,
		"b.png": 30 * time.Millisecond,
		"c.png": 0,
	}}

	builder := NewGalleryBuilder(uploader, nil)
	require.NoError(t, builder.AddFiles(pendingImage("a.png"), pendingImage("b.png"), pendingImage("c.png")))

	result, err := builder.Commit(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, result.Images, 3)
	assert.True(t, strings.HasSuffix(result.Images[0], "a.png"))
	assert.True(t, strings.HasSuffix(result.Images[1], "b.png"))
	assert.True(t, strings.HasSuffix(result.Images[2], "c.png"))
	assert.Equal(t, result.Images[0], result.Thumbnail)
}

func TestGalleryCommitMergesExistingBeforeUploads(t *testing.T) {
	uploader := &fakeUploader{}
	existing := []string{
		"https://cdn.test/portofolios/portfolio-images/old-1.png",
		"https://cdn.test/portofolios/portfolio-images/old-2.png",
	}

	builder := NewGalleryBuilder(uploader, existing)
	require.NoError(t, builder.AddFiles(pendingImage("new.png")))

	result, err := builder.Commit(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, result.Images, 3)
	assert.Equal(t, existing[0], result.Images[0])
	assert.Equal(t, existing[1], result.Images[1])
	assert.True(t, strings.HasSuffix(result.Images[2], "new.png"))
	assert.Equal(t, existing[0], result.Thumbnail)

	// A committed builder carries the merged list as its new existing set.
	assert.Equal(t, result.Images, builder.Existing())
	assert.Zero(t, builder.PendingCount())
}

func TestGalleryCommitFiltersBlankEntries(t *testing.T) {
	uploader := &fakeUploader{}
	builder := NewGalleryBuilder(uploader, []string{"", "  ", "https://cdn.test/portofolios/portfolio-images/kept.png"})

	result, err := builder.Commit(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"https://cdn.test/portofolios/portfolio-images/kept.png"}, result.Images)
}

func TestGalleryCommitThumbnailFallback(t *testing.T) {
	builder := NewGalleryBuilder(&fakeUploader{}, nil)

	result, err := builder.Commit(context.Background(), "  https://example.com/manual.png  ")
	require.NoError(t, err)
	assert.Empty(t, result.Images)
	assert.Equal(t, "https://example.com/manual.png", result.Thumbnail)

	result, err = builder.Commit(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "", result.Thumbnail)
}

func TestGalleryCommitFailureLeavesStateAndCleansUp(t *testing.T) {
	bucketErr := errs.NewBucketMissingError("portofolios")
	uploader := &fakeUploader{
		failures: map[string]error{"bad.png": bucketErr},
		delays:   map[string]time.Duration{"bad.png": 40 * time.Millisecond},
	}

	existing := []string{"https://cdn.test/portofolios/portfolio-images/old.png"}
	builder := NewGalleryBuilder(uploader, existing)
	require.NoError(t, builder.AddFiles(pendingImage("good.png"), pendingImage("bad.png")))

	_, err := builder.Commit(context.Background(), "")
	require.Error(t, err)
	// The specific guidance error must surface, not a generic wrapper.
	assert.ErrorIs(t, err, errs.ErrBucketMissing)

	// Assembled state is untouched so the same builder can retry.
	assert.Equal(t, existing, builder.Existing())
	assert.Equal(t, 2, builder.PendingCount())

	// The upload that succeeded before the failure was deleted.
	require.Eventually(t, func() bool {
		uploader.mu.Lock()
		defer uploader.mu.Unlock()
		return len(uploader.deleted) == 1
	}, time.Second, 10*time.Millisecond)
	uploader.mu.Lock()
	assert.True(t, strings.HasSuffix(uploader.deleted[0], "good.png"))
	uploader.mu.Unlock()
}

func TestGalleryRejectsMutationsDuringCommit(t *testing.T) {
	uploader := &fakeUploader{gate: make(chan struct{})}
	builder := NewGalleryBuilder(uploader, nil)
	require.NoError(t, builder.AddFiles(pendingImage("a.png")))

	done := make(chan error, 1)
	go func() {
		_, err := builder.Commit(context.Background(), "")
		done <- err
	}()

	// Wait until the commit is in flight.
	require.Eventually(t, func() bool {
		return errors.Is(builder.AddFiles(pendingImage("late.png")), errs.ErrCommitInFlight)
	}, time.Second, 5*time.Millisecond)

	assert.ErrorIs(t, builder.RemoveNew(0), errs.ErrCommitInFlight)
	assert.ErrorIs(t, builder.RemoveExisting(0), errs.ErrCommitInFlight)

	_, err := builder.Commit(context.Background(), "")
	assert.ErrorIs(t, err, errs.ErrCommitInFlight)

	close(uploader.gate)
	require.NoError(t, <-done)

	// Mutations are accepted again after the commit completes.
	assert.NoError(t, builder.AddFiles(pendingImage("after.png")))
}

func TestGalleryRemoveKeepsFilesAndPreviewsAligned(t *testing.T) {
	builder := NewGalleryBuilder(&fakeUploader{}, []string{"one", "two", "three"})
	require.NoError(t, builder.AddFiles(pendingImage("a.png"), pendingImage("b.png"), pendingImage("c.png")))

	require.NoError(t, builder.RemoveNew(1))
	assert.Equal(t, 2, builder.PendingCount())
	assert.Len(t, builder.Previews(), 2)

	require.NoError(t, builder.RemoveExisting(0))
	assert.Equal(t, []string{"two", "three"}, builder.Existing())

	// Out-of-range removals are silent no-ops.
	require.NoError(t, builder.RemoveNew(5))
	require.NoError(t, builder.RemoveExisting(-1))
	assert.Equal(t, 2, builder.PendingCount())
	assert.Equal(t, []string{"two", "three"}, builder.Existing())
}

func TestGalleryPreviewsCompleteOutOfOrder(t *testing.T) {
	builder := NewGalleryBuilder(&fakeUploader{}, nil)
	require.NoError(t, builder.AddFiles(
		PendingImage{Filename: "a.png", ContentType: "image/png", Data: []byte("aaa")},
		PendingImage{Filename: "b.jpg", ContentType: "image/jpeg", Data: []byte("bbb")},
	))

	require.Eventually(t, func() bool {
		previews := builder.Previews()
		return len(previews) == 2 && previews[0].Ready && previews[1].Ready
	}, time.Second, 5*time.Millisecond)

	previews := builder.Previews()
	assert.True(t, strings.HasPrefix(previews[0].DataURI, "data:image/png;base64,"))
	assert.True(t, strings.HasPrefix(previews[1].DataURI, "data:image/jpeg;base64,"))
}

func TestGalleryUploadErrorMessageCarriesKey(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	uploader := &fakeUploader{failures: map[string]error{"x.png": errs.NewUploadError("portfolio-images/x.png", cause)}}

	builder := NewGalleryBuilder(uploader, nil)
	require.NoError(t, builder.AddFiles(pendingImage("x.png")))

	_, err := builder.Commit(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrUploadFailed)
}
