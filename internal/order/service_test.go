package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"print3d-order-admin/internal/pkg/model"
	"print3d-order-admin/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	orders map[int64]*DBOrder
	files  map[int64]*DBOrderFile

	updates   int
	lastLimit uint64
	lastOff   uint64
	lastStat  []string
	err       error
}

func newMemRepo() *memRepo {
	return &memRepo{
		orders: map[int64]*DBOrder{},
		files:  map[int64]*DBOrderFile{},
	}
}

func (m *memRepo) GetOrderByID(ctx context.Context, orderID int64) (*DBOrder, error) {
	if m.err != nil {
		return nil, m.err
	}
	o, ok := m.orders[orderID]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (m *memRepo) GetOrders(ctx context.Context, statuses []string, limit, offset uint64) ([]DBOrder, error) {
	m.lastLimit, m.lastOff, m.lastStat = limit, offset, statuses
	var out []DBOrder
	for _, o := range m.orders {
		out = append(out, *o)
	}
	return out, m.err
}

func (m *memRepo) UpdateOrderStatus(ctx context.Context, orderID int64, status string) (bool, error) {
	m.updates++
	if m.err != nil {
		return false, m.err
	}
	o, ok := m.orders[orderID]
	if !ok {
		return false, nil
	}
	o.Status = status
	return true, nil
}

func (m *memRepo) CountOrdersByStatus(ctx context.Context) ([]DBStatusCount, error) {
	if m.err != nil {
		return nil, m.err
	}
	counts := map[string]int{}
	for _, o := range m.orders {
		counts[o.Status]++
	}
	var out []DBStatusCount
	for status, n := range counts {
		out = append(out, DBStatusCount{Status: status, Count: n})
	}
	return out, nil
}

func (m *memRepo) GetOrderFiles(ctx context.Context, orderID int64) ([]DBOrderFile, error) {
	var out []DBOrderFile
	for _, f := range m.files {
		if f.OrderID == orderID {
			out = append(out, *f)
		}
	}
	return out, m.err
}

func (m *memRepo) GetOrderFileByID(ctx context.Context, fileID int64) (*DBOrderFile, error) {
	f, ok := m.files[fileID]
	if !ok {
		return nil, m.err
	}
	cp := *f
	return &cp, nil
}

func (m *memRepo) add(id int64, status string) {
	m.orders[id] = &DBOrder{
		ID:        id,
		UserID:    1000 + id,
		FullName:  "Client",
		Branch:    "print",
		Status:    status,
		Payload:   `{"material":"PETG","technology":"FDM","qty":2}`,
		CreatedAt: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestGetOrderByID(t *testing.T) {
	repo := newMemRepo()
	repo.add(1, "new")
	svc := NewDefaultService(repo)

	order, err := svc.GetOrderByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), order.ID)
	assert.Equal(t, model.StatusNew, order.Status)
	assert.Equal(t, model.BranchPrint, order.Branch)
	assert.Equal(t, "PETG", order.Payload["material"])
	assert.Equal(t, float64(2), order.Payload["qty"])
}

func TestGetOrderByIDNotFound(t *testing.T) {
	svc := NewDefaultService(newMemRepo())

	for _, id := range []int64{-1, 0, 42} {
		_, err := svc.GetOrderByID(context.Background(), id)
		assert.ErrorIs(t, err, pkg.ErrNotFound, id)
	}
}

func TestGetOrderByIDDraftReadsAsFilling(t *testing.T) {
	repo := newMemRepo()
	repo.add(3, "draft")
	svc := NewDefaultService(repo)

	order, err := svc.GetOrderByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, model.StatusFilling, order.Status)
}

func TestGetOrderByIDBrokenPayload(t *testing.T) {
	repo := newMemRepo()
	repo.add(4, "new")
	repo.orders[4].Payload = `[1,2`
	svc := NewDefaultService(repo)

	order, err := svc.GetOrderByID(context.Background(), 4)
	require.NoError(t, err)
	assert.Empty(t, order.Payload)
}

func TestSetStatus(t *testing.T) {
	repo := newMemRepo()
	repo.add(1, "new")
	svc := NewDefaultService(repo)

	require.NoError(t, svc.SetStatus(context.Background(), 1, model.StatusInWork))

	order, err := svc.GetOrderByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInWork, order.Status)
}

func TestSetStatusLeavesTerminalStatesOpen(t *testing.T) {
	repo := newMemRepo()
	repo.add(1, "done")
	svc := NewDefaultService(repo)

	require.NoError(t, svc.SetStatus(context.Background(), 1, model.StatusInWork))
	assert.Equal(t, "in_work", repo.orders[1].Status)
}

func TestSetStatusInvalidIsNoop(t *testing.T) {
	repo := newMemRepo()
	repo.add(1, "new")
	svc := NewDefaultService(repo)

	for _, status := range []model.OrderStatus{"", "draft", "closed", "DONE"} {
		require.NoError(t, svc.SetStatus(context.Background(), 1, status))
	}
	assert.Zero(t, repo.updates)
	assert.Equal(t, "new", repo.orders[1].Status)
}

func TestSetStatusUnknownOrderIsNoop(t *testing.T) {
	repo := newMemRepo()
	svc := NewDefaultService(repo)

	for _, status := range model.Statuses {
		require.NoError(t, svc.SetStatus(context.Background(), 99, status))
		require.NoError(t, svc.SetStatus(context.Background(), 0, status))
	}
	assert.Empty(t, repo.orders)
}

func TestSetStatusStorageError(t *testing.T) {
	repo := newMemRepo()
	repo.add(1, "new")
	repo.err = errors.New("connection reset")
	svc := NewDefaultService(repo)

	assert.Error(t, svc.SetStatus(context.Background(), 1, model.StatusDone))
}

func TestGetOrdersPaging(t *testing.T) {
	repo := newMemRepo()
	repo.add(1, "new")
	svc := NewDefaultService(repo)

	orders, err := svc.GetOrders(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, uint64(PageSize), repo.lastLimit)
	assert.Equal(t, uint64(0), repo.lastOff)
	assert.Nil(t, repo.lastStat)

	_, err = svc.GetOrders(context.Background(), nil, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(2*PageSize), repo.lastOff)
}

func TestGetOrdersFilter(t *testing.T) {
	repo := newMemRepo()
	svc := NewDefaultService(repo)

	done := model.StatusDone
	_, err := svc.GetOrders(context.Background(), &done, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"done"}, repo.lastStat)

	filling := model.StatusFilling
	_, err = svc.GetOrders(context.Background(), &filling, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"filling", "draft"}, repo.lastStat)

	bogus := model.OrderStatus("archived")
	_, err = svc.GetOrders(context.Background(), &bogus, 1)
	require.NoError(t, err)
	assert.Nil(t, repo.lastStat)
}

func TestCountByStatus(t *testing.T) {
	repo := newMemRepo()
	repo.add(1, "new")
	repo.add(2, "new")
	repo.add(3, "draft")
	repo.add(4, "filling")
	repo.add(5, "done")
	repo.add(6, "legacy")
	svc := NewDefaultService(repo)

	counts, err := svc.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Len(t, counts, len(model.Statuses))
	assert.Equal(t, 2, counts[model.StatusNew])
	assert.Equal(t, 2, counts[model.StatusFilling])
	assert.Equal(t, 1, counts[model.StatusDone])
	assert.Equal(t, 0, counts[model.StatusCanceled])
}

func TestGetOrderFile(t *testing.T) {
	repo := newMemRepo()
	repo.add(1, "new")
	repo.files[7] = &DBOrderFile{ID: 7, OrderID: 1, TelegramFileID: "BQAC", OriginalName: "part.stl"}
	svc := NewDefaultService(repo)

	file, err := svc.GetOrderFile(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "BQAC", file.TelegramFileID)

	_, err = svc.GetOrderFile(context.Background(), 8)
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	files, err := svc.GetOrderFiles(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}
