package reservation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"deipna/internal/database"
	"deipna/internal/domain"
	"deipna/internal/repository"
)

// recordingSender captures hub notifications so tests can assert on the
// owner-facing event stream without websockets.
type recordingSender struct {
	created       []string
	statusChanged []string
}

func (r *recordingSender) NotifyReservationCreated(ownerID string, _ *domain.Reservation) {
	r.created = append(r.created, ownerID)
}

func (r *recordingSender) NotifyReservationStatusChanged(ownerID string, _ *domain.Reservation) {
	r.statusChanged = append(r.statusChanged, ownerID)
}

type testEnv struct {
	svc        *Service
	db         *gorm.DB
	sender     *recordingSender
	owner      *domain.User
	customer   *domain.User
	restaurant *domain.Restaurant
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	owner := &domain.User{
		Email:     "owner@example.com",
		Password:  "irrelevant",
		FirstName: "Olive",
		LastName:  "Garnier",
		Role:      domain.RoleRestaurantOwner,
	}
	require.NoError(t, db.Create(owner).Error)

	phone := "+33700000000"
	customer := &domain.User{
		Email:     "customer@example.com",
		Password:  "irrelevant",
		FirstName: "Chris",
		LastName:  "Diner",
		Phone:     &phone,
		Role:      domain.RoleCustomer,
	}
	require.NoError(t, db.Create(customer).Error)

	restaurant := &domain.Restaurant{
		Name:    "Test Kitchen",
		OwnerID: owner.ID,
	}
	require.NoError(t, db.Create(restaurant).Error)

	sender := &recordingSender{}
	svc := NewService(
		repository.NewReservationRepository(db),
		repository.NewRestaurantRepository(db),
		repository.NewUserRepository(db),
		sender,
	)
	return &testEnv{
		svc:        svc,
		db:         db,
		sender:     sender,
		owner:      owner,
		customer:   customer,
		restaurant: restaurant,
	}
}

func baseRequest(restaurantID string) CreateReservationRequest {
	return CreateReservationRequest{
		RestaurantID: restaurantID,
		Date:         "2026-09-12",
		Time:         "19:30",
		PartySize:    2,
	}
}

func TestCreate_AuthenticatedFillsGuestInfoFromAccount(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.svc.Create(context.Background(), env.customer.ID, baseRequest(env.restaurant.ID))

	require.NoError(t, err)
	assert.Equal(t, domain.ReservationPending, res.Status)
	require.NotNil(t, res.UserID)
	assert.Equal(t, env.customer.ID, *res.UserID)
	assert.Equal(t, "Chris", res.GuestInfo.FirstName)
	assert.Equal(t, "customer@example.com", res.GuestInfo.Email)
	assert.Equal(t, "+33700000000", res.GuestInfo.Phone)
	assert.Equal(t, []string{env.owner.ID}, env.sender.created)
}

func TestCreate_GuestCheckout(t *testing.T) {
	env := newTestEnv(t)

	req := baseRequest(env.restaurant.ID)
	req.GuestInfo = &GuestInfoInput{
		FirstName: "Walk",
		LastName:  "In",
		Email:     "walkin@example.com",
		Phone:     "+33611111111",
	}

	res, err := env.svc.Create(context.Background(), "", req)

	require.NoError(t, err)
	assert.Nil(t, res.UserID)
	assert.Equal(t, "Walk", res.GuestInfo.FirstName)
}

func TestCreate_GuestWithoutInfoRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Create(context.Background(), "", baseRequest(env.restaurant.ID))
	assert.ErrorIs(t, err, ErrGuestInfoRequired)
}

func TestCreate_UnknownRestaurant(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Create(context.Background(), env.customer.ID, baseRequest("no-such-restaurant"))
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

func TestUpdateStatus_OwnerTransitions(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.svc.Create(context.Background(), env.customer.ID, baseRequest(env.restaurant.ID))
	require.NoError(t, err)

	confirmed, err := env.svc.UpdateStatus(context.Background(), env.owner.ID, res.ID, "CONFIRMED")
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationConfirmed, confirmed.Status)
	assert.Equal(t, []string{env.owner.ID}, env.sender.statusChanged)

	// PENDING is only ever set at creation
	_, err = env.svc.UpdateStatus(context.Background(), env.owner.ID, res.ID, "PENDING")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = env.svc.UpdateStatus(context.Background(), env.owner.ID, res.ID, "SHIPPED")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_NonOwnerForbidden(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.svc.Create(context.Background(), env.customer.ID, baseRequest(env.restaurant.ID))
	require.NoError(t, err)

	_, err = env.svc.UpdateStatus(context.Background(), env.customer.ID, res.ID, "CONFIRMED")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCancel_CreatorOnly(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.svc.Create(context.Background(), env.customer.ID, baseRequest(env.restaurant.ID))
	require.NoError(t, err)

	_, err = env.svc.Cancel(context.Background(), env.owner.ID, res.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	cancelled, err := env.svc.Cancel(context.Background(), env.customer.ID, res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationCancelled, cancelled.Status)

	// the row survives cancellation for the restaurant's records
	kept, err := env.svc.Get(context.Background(), env.customer.ID, res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationCancelled, kept.Status)
}

func TestMy_ListsOwnReservationsOnly(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Create(context.Background(), env.customer.ID, baseRequest(env.restaurant.ID))
	require.NoError(t, err)

	guestReq := baseRequest(env.restaurant.ID)
	guestReq.GuestInfo = &GuestInfoInput{
		FirstName: "Walk", LastName: "In", Email: "walkin@example.com", Phone: "+33611111111",
	}
	_, err = env.svc.Create(context.Background(), "", guestReq)
	require.NoError(t, err)

	mine, err := env.svc.My(context.Background(), env.customer.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestGet_GuestRowsNotReadableByAccounts(t *testing.T) {
	env := newTestEnv(t)

	req := baseRequest(env.restaurant.ID)
	req.GuestInfo = &GuestInfoInput{
		FirstName: "Walk", LastName: "In", Email: "walkin@example.com", Phone: "+33611111111",
	}
	res, err := env.svc.Create(context.Background(), "", req)
	require.NoError(t, err)

	_, err = env.svc.Get(context.Background(), env.customer.ID, res.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}
