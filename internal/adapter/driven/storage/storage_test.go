package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/require"

	"github.com/diillson/loa-audit-dashboard-go/internal/domain/entity"
	"github.com/diillson/loa-audit-dashboard-go/internal/domain/repository"
	"github.com/diillson/loa-audit-dashboard-go/internal/shared/types"
)

func sampleLines() []entity.LedgerLine {
	return []entity.LedgerLine{
		{
			ID: "0007", ExpenseElement: "3.1.90.11", ActionCode: "20TP", SourceCode: "1000",
			CreditTotal: 1200, CommittedAccrued: 1100, SettledThisMonth: 100,
			SettledAccrued: 600, AvailableBalance: 100,
		},
		{
			ID: "0012", ExpenseElement: "3.3.90.39", ActionCode: "2000", SourceCode: "9999",
			CreditTotal: 50.5, SettledAccrued: 10.25, Notes: "contrato",
		},
	}
}

// fakeS3 guarda objetos em memória.
type fakeS3 struct {
	mu       sync.Mutex
	objects  map[string][]byte
	metadata map[string]map[string]string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, metadata: map[string]map[string]string{}}
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{Message: aws.String("not found")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Key)] = data
	f.metadata[aws.ToString(in.Key)] = in.Metadata
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func openStores(t *testing.T) map[string]repository.LedgerRepository {
	t.Helper()
	dir := t.TempDir()

	sqliteStore, err := NewSQLiteStore(filepath.Join(dir, "loa.db"), types.DefaultStorageKey)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteStore.Close() })

	return map[string]repository.LedgerRepository{
		"file":   NewFileStore(dir, types.DefaultStorageKey),
		"sqlite": sqliteStore,
		"s3":     newS3StoreWithClient(newFakeS3(), "auditoria", types.DefaultStorageKey),
		"memory": NewMemoryStore(types.DefaultStorageKey),
	}
}

func TestStores_EmptyLoadSaveReplaceClear(t *testing.T) {
	ctx := context.Background()

	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			lines, err := store.Load(ctx)
			require.NoError(t, err)
			require.Empty(t, lines)
			require.NotNil(t, lines)

			require.NoError(t, store.Save(ctx, "batch-1", sampleLines()))
			lines, err = store.Load(ctx)
			require.NoError(t, err)
			require.Equal(t, sampleLines(), lines)

			// Save substitui o conjunto inteiro.
			replacement := sampleLines()[1:]
			require.NoError(t, store.Save(ctx, "batch-2", replacement))
			lines, err = store.Load(ctx)
			require.NoError(t, err)
			require.Equal(t, replacement, lines)

			require.NoError(t, store.Clear(ctx))
			require.NoError(t, store.Clear(ctx))
			lines, err = store.Load(ctx)
			require.NoError(t, err)
			require.Empty(t, lines)

			require.NotEmpty(t, store.Location())
		})
	}
}

func TestFileStore_CorruptPayloadIsDiscarded(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir, "k")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "k.json"), []byte("{not json"), 0o600))

	lines, err := store.Load(context.Background())
	require.ErrorIs(t, err, types.ErrDatasetDiscarded)
	require.Empty(t, lines)

	_, statErr := os.Stat(filepath.Join(dir, "k.json"))
	require.True(t, os.IsNotExist(statErr))

	lines, err = store.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestFileStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	store := NewFileStore(dir, "k")
	require.NoError(t, store.Save(context.Background(), "", sampleLines()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "k.json", entries[0].Name())
}

func TestSQLiteStore_CorruptPayloadAndBatchID(t *testing.T) {
	ctx := context.Background()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "loa.db"), "k")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save(ctx, "b-42", sampleLines()))
	id, err := store.BatchID(ctx)
	require.NoError(t, err)
	require.Equal(t, "b-42", id)

	_, err = store.db.ExecContext(ctx, `UPDATE kv_store SET value = 'garbage' WHERE key = 'k'`)
	require.NoError(t, err)

	lines, err := store.Load(ctx)
	require.ErrorIs(t, err, types.ErrDatasetDiscarded)
	require.Empty(t, lines)

	id, err = store.BatchID(ctx)
	require.NoError(t, err)
	require.Empty(t, id)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "loa.db")

	first, err := NewSQLiteStore(path, "k")
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, "b", sampleLines()))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStore(path, "k")
	require.NoError(t, err)
	defer second.Close()

	lines, err := second.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, sampleLines(), lines)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loa.db")

	require.NoError(t, RunMigrations(path))
	require.NoError(t, RunMigrations(path))

	store, err := NewSQLiteStore(path, "k")
	require.NoError(t, err)
	defer store.Close()

	var count int
	row := store.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='kv_store'`)
	require.NoError(t, row.Scan(&count))
	require.Equal(t, 1, count)
}

func TestS3Store_MetadataAndCorruptPayload(t *testing.T) {
	ctx := context.Background()
	fake := newFakeS3()
	store := newS3StoreWithClient(fake, "auditoria", "k")

	require.NoError(t, store.Save(ctx, "b-7", sampleLines()))
	require.Equal(t, "b-7", fake.metadata["k.json"]["batch-id"])
	require.Equal(t, "s3://auditoria/k.json", store.Location())

	fake.objects["k.json"] = []byte("[1, 2")
	lines, err := store.Load(ctx)
	require.ErrorIs(t, err, types.ErrDatasetDiscarded)
	require.Empty(t, lines)
	require.NotContains(t, fake.objects, "k.json")
}

func TestMemoryStore_CorruptPayload(t *testing.T) {
	store := NewMemoryStore("k")
	require.NoError(t, store.Save(context.Background(), "b", sampleLines()))
	require.Equal(t, "b", store.BatchID())

	store.SetRaw([]byte("nope"))
	lines, err := store.Load(context.Background())
	require.ErrorIs(t, err, types.ErrDatasetDiscarded)
	require.Empty(t, lines)
	require.Empty(t, store.BatchID())
}

func TestNewLedgerRepository(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	repo, err := NewLedgerRepository(ctx, types.StorageConfig{Path: dir})
	require.NoError(t, err)
	require.IsType(t, &FileStore{}, repo)
	require.Equal(t, filepath.Join(dir, types.DefaultStorageKey+".json"), repo.Location())

	repo, err = NewLedgerRepository(ctx, types.StorageConfig{Backend: "SQLite", Path: filepath.Join(dir, "x.db")})
	require.NoError(t, err)
	require.IsType(t, &SQLiteStore{}, repo)
	require.NoError(t, repo.(*SQLiteStore).Close())

	repo, err = NewLedgerRepository(ctx, types.StorageConfig{Backend: "memory", Key: "custom"})
	require.NoError(t, err)
	require.Equal(t, "memory://custom", repo.Location())

	_, err = NewLedgerRepository(ctx, types.StorageConfig{Backend: "s3"})
	require.ErrorIs(t, err, types.ErrUnsupportedStorage)

	_, err = NewLedgerRepository(ctx, types.StorageConfig{Backend: "redis"})
	require.ErrorIs(t, err, types.ErrUnsupportedStorage)
}
