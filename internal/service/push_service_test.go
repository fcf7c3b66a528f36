package service

import (
	"Touchline/internal/api/dto"
	"Touchline/internal/pkg/consts"
	"Touchline/internal/pkg/mongo"
	"Touchline/internal/pkg/push"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
)

type fakeDeviceRepo struct {
	mu      sync.Mutex
	devices map[primitive.ObjectID]*mongo.DeviceModel
}

func newFakeDeviceRepo() *fakeDeviceRepo {
	return &fakeDeviceRepo{devices: map[primitive.ObjectID]*mongo.DeviceModel{}}
}

func (f *fakeDeviceRepo) Upsert(_ context.Context, device *mongo.DeviceModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	device.LastLogin = time.Now()
	for _, d := range f.devices {
		if d.IDString == device.IDString {
			d.Type, d.AppVer, d.OSVer, d.DeviceInfo, d.LastLogin = device.Type, device.AppVer, device.OSVer, device.DeviceInfo, device.LastLogin
			*device = *d
			return nil
		}
	}
	device.ID = primitive.NewObjectID()
	stored := *device
	f.devices[device.ID] = &stored
	return nil
}

func (f *fakeDeviceRepo) GetByID(_ context.Context, id primitive.ObjectID) (*mongo.DeviceModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.devices[id]
	if !ok {
		return nil, mongoDB.ErrNoDocuments
	}
	copied := *d
	return &copied, nil
}

func (f *fakeDeviceRepo) List(_ context.Context, limit, offset int64) ([]*mongo.DeviceModel, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := make([]*mongo.DeviceModel, 0, len(f.devices))
	for _, d := range f.devices {
		list = append(list, d)
	}
	total := int64(len(list))
	if offset >= total {
		return nil, total, nil
	}
	list = list[offset:]
	if int64(len(list)) > limit {
		list = list[:limit]
	}
	return list, total, nil
}

func (f *fakeDeviceRepo) SetFreeze(_ context.Context, id primitive.ObjectID, freeze bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.devices[id]
	if !ok {
		return mongoDB.ErrNoDocuments
	}
	d.Freeze = freeze
	return nil
}

func (f *fakeDeviceRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.devices[id]; !ok {
		return mongoDB.ErrNoDocuments
	}
	delete(f.devices, id)
	return nil
}

type fakePushRepo struct {
	mu     sync.Mutex
	pushes map[primitive.ObjectID]*mongo.PushModel
}

func (f *fakePushRepo) Create(_ context.Context, p *mongo.PushModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now()
	stored := *p
	f.pushes[p.ID] = &stored
	return nil
}

func (f *fakePushRepo) GetByID(_ context.Context, id primitive.ObjectID) (*mongo.PushModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pushes[id]
	if !ok {
		return nil, mongoDB.ErrNoDocuments
	}
	copied := *p
	return &copied, nil
}

func (f *fakePushRepo) List(_ context.Context, limit, offset int64) ([]*mongo.PushModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := make([]*mongo.PushModel, 0, len(f.pushes))
	for _, p := range f.pushes {
		list = append(list, p)
	}
	return list, nil
}

func (f *fakePushRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status int8, errMsg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pushes[id]
	if !ok {
		return mongoDB.ErrNoDocuments
	}
	p.Status = status
	p.Error = errMsg
	return nil
}

func (f *fakePushRepo) status(t *testing.T, id string) int8 {
	t.Helper()
	oid, err := primitive.ObjectIDFromHex(id)
	require.NoError(t, err)
	p, err := f.GetByID(context.Background(), oid)
	require.NoError(t, err)
	return p.Status
}

type fakeQueue struct {
	ids []string
	err error
}

func (f *fakeQueue) Enqueue(_ context.Context, pushID string) error {
	if f.err != nil {
		return f.err
	}
	f.ids = append(f.ids, pushID)
	return nil
}

type fakeGateway struct {
	sent []int8
	err  error
}

func (f *fakeGateway) Send(_ context.Context, deviceType int8, _ *push.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, deviceType)
	return nil
}

type pushEnv struct {
	devices *fakeDeviceRepo
	pushes  *fakePushRepo
	queue   *fakeQueue
	gateway *fakeGateway
	svc     PushService
	devSvc  DeviceService
}

func newPushEnv() *pushEnv {
	e := &pushEnv{
		devices: newFakeDeviceRepo(),
		pushes:  &fakePushRepo{pushes: map[primitive.ObjectID]*mongo.PushModel{}},
		queue:   &fakeQueue{},
		gateway: &fakeGateway{},
	}
	e.svc = NewPushService(e.pushes, e.devices, e.queue, e.gateway, 25)
	e.devSvc = NewDeviceService(e.devices, 25)
	return e
}

func TestDevice_RegisterUpsertsByIDString(t *testing.T) {
	e := newPushEnv()
	ctx := context.Background()

	first, err := e.devSvc.Register(ctx, &dto.DeviceDTO{IDString: "tok-1", Type: consts.DeviceTypeIOS, AppVer: "1.0"})
	require.NoError(t, err)
	second, err := e.devSvc.Register(ctx, &dto.DeviceDTO{IDString: "tok-1", Type: consts.DeviceTypeIOS, AppVer: "1.1"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "1.1", second.AppVer)

	list, err := e.devSvc.List(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)

	assert.ErrorIs(t, e.devSvc.Freeze(ctx, "bad", true), ErrParamInvalid)
	assert.ErrorIs(t, e.devSvc.Delete(ctx, primitive.NewObjectID().Hex()), ErrDeviceNotFound)
	require.NoError(t, e.devSvc.Delete(ctx, first.ID))
}

func TestPush_CreateAndDispatch(t *testing.T) {
	e := newPushEnv()
	ctx := context.Background()
	device, err := e.devSvc.Register(ctx, &dto.DeviceDTO{IDString: "tok-2", Type: consts.DeviceTypeAndroid})
	require.NoError(t, err)

	created, err := e.svc.Create(ctx, &dto.PushCreateDTO{AppID: device.ID, Title: "Kick-off", Content: "Derby starts"})
	require.NoError(t, err)
	assert.Equal(t, consts.PushStatusPending, created.Status)
	assert.Equal(t, []string{created.ID}, e.queue.ids)

	require.NoError(t, e.svc.Dispatch(ctx, created.ID))
	assert.Equal(t, consts.PushStatusSent, e.pushes.status(t, created.ID))
	assert.Equal(t, []int8{consts.DeviceTypeAndroid}, e.gateway.sent)

	require.NoError(t, e.svc.Dispatch(ctx, created.ID))
	assert.Len(t, e.gateway.sent, 1)

	_, err = e.svc.Create(ctx, &dto.PushCreateDTO{AppID: primitive.NewObjectID().Hex(), Title: "x", Content: "y"})
	assert.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestPush_DispatchSkipsFrozenAndRecordsFailures(t *testing.T) {
	e := newPushEnv()
	ctx := context.Background()
	device, err := e.devSvc.Register(ctx, &dto.DeviceDTO{IDString: "tok-3", Type: consts.DeviceTypeIOS})
	require.NoError(t, err)

	frozen, err := e.svc.Create(ctx, &dto.PushCreateDTO{AppID: device.ID, Title: "a", Content: "b"})
	require.NoError(t, err)
	require.NoError(t, e.devSvc.Freeze(ctx, device.ID, true))
	require.NoError(t, e.svc.Dispatch(ctx, frozen.ID))
	assert.Equal(t, consts.PushStatusSkipped, e.pushes.status(t, frozen.ID))
	assert.Empty(t, e.gateway.sent)

	require.NoError(t, e.devSvc.Freeze(ctx, device.ID, false))
	failing, err := e.svc.Create(ctx, &dto.PushCreateDTO{AppID: device.ID, Title: "a", Content: "b"})
	require.NoError(t, err)
	e.gateway.err = errors.New("gateway down")
	require.NoError(t, e.svc.Dispatch(ctx, failing.ID))
	assert.Equal(t, consts.PushStatusFailed, e.pushes.status(t, failing.ID))

	assert.NoError(t, e.svc.Dispatch(ctx, "not-an-id"))
	assert.NoError(t, e.svc.Dispatch(ctx, primitive.NewObjectID().Hex()))
}

func TestPush_CreateEnqueueFailure(t *testing.T) {
	e := newPushEnv()
	ctx := context.Background()
	device, err := e.devSvc.Register(ctx, &dto.DeviceDTO{IDString: "tok-4", Type: consts.DeviceTypeIOS})
	require.NoError(t, err)
	e.queue.err = errors.New("broker down")

	_, err = e.svc.Create(ctx, &dto.PushCreateDTO{AppID: device.ID, Title: "a", Content: "b"})
	assert.ErrorIs(t, err, UnExpectedError)

	list, err := e.svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, consts.PushStatusFailed, list[0].Status)
}
