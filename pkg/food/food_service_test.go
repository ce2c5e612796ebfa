package food

import (
	"Pantrii-Backend/domain"
	"Pantrii-Backend/entities"
	"Pantrii-Backend/pkg/expiry"
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var wib = time.FixedZone("WIB", 7*60*60)

type fakeFoodRepository struct {
	items []*entities.FoodItem
}

func (f *fakeFoodRepository) AddFoodItem(_ context.Context, foodItem *entities.FoodItem) error {
	f.items = append(f.items, foodItem)
	return nil
}

func (f *fakeFoodRepository) GetFoodItemByID(_ context.Context, id string) (*entities.FoodItem, error) {
	for _, item := range f.items {
		if item.ID.String() == id {
			return item, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeFoodRepository) UpdateFoodItem(_ context.Context, foodItem *entities.FoodItem) error {
	for i, item := range f.items {
		if item.ID == foodItem.ID {
			f.items[i] = foodItem
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeFoodRepository) DeleteFoodItem(_ context.Context, id string) error {
	kept := f.items[:0]
	for _, item := range f.items {
		if item.ID.String() != id {
			kept = append(kept, item)
		}
	}
	f.items = kept
	return nil
}

func (f *fakeFoodRepository) GetFoodItemsByUser(_ context.Context, userID string) ([]*entities.FoodItem, error) {
	out := []*entities.FoodItem{}
	for _, item := range f.items {
		if item.UserID.String() == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeFoodRepository) MarkFoodItemAsDamaged(_ context.Context, id string) error {
	for _, item := range f.items {
		if item.ID.String() == id {
			item.IsDamaged = true
		}
	}
	return nil
}

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

type fakeUsers struct {
	user *entities.User
}

func (u *fakeUsers) GetUserByID(_ context.Context, _ string) (*entities.User, error) {
	if u.user == nil {
		return nil, domain.ErrUserNotFound
	}
	return u.user, nil
}

type fixture struct {
	svc    *foodService
	repo   *fakeFoodRepository
	mailer *fakeMailer
	users  *fakeUsers
	userID uuid.UUID
}

func newFixture() *fixture {
	repo := &fakeFoodRepository{}
	mailer := &fakeMailer{}
	userID := uuid.New()
	users := &fakeUsers{user: &entities.User{ID: userID, Name: "Sari", Email: "sari@example.com"}}

	svc := NewFoodService(repo, nil, mailer, users).(*foodService)
	svc.loc = wib
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, wib) }

	return &fixture{svc: svc, repo: repo, mailer: mailer, users: users, userID: userID}
}

// seed stores an item expiring offset days from 2025-03-10. A nil offset
// leaves the expiry date empty.
func (f *fixture) seed(name string, offset *int, damaged bool) *entities.FoodItem {
	item := &entities.FoodItem{ID: uuid.New(), UserID: f.userID, Name: name, IsDamaged: damaged}
	if offset != nil {
		// Dates come back from the date column as UTC midnight.
		d := time.Date(2025, 3, 10+*offset, 0, 0, 0, 0, time.UTC)
		item.ExpiryDate = &d
	}
	f.repo.items = append(f.repo.items, item)
	return item
}

func days(n int) *int { return &n }

func TestAddFoodItem_DefaultsExpiryAndCategory(t *testing.T) {
	f := newFixture()

	res, err := f.svc.AddFoodItem(context.Background(), domain.AddFoodItemRequest{Name: " Milk ", Quantity: "1 L"}, f.userID.String())
	require.NoError(t, err)

	assert.Equal(t, "Milk", res.Name)
	assert.Equal(t, domain.DefaultFoodCategory, res.CategoryID)
	assert.Equal(t, "2025-03-24", res.ExpiryDate)
	assert.Equal(t, expiry.StatusGood, res.Expiry.Status)
	require.NotNil(t, res.Expiry.DaysRemaining)
	assert.Equal(t, 14, *res.Expiry.DaysRemaining)
	assert.Equal(t, "In 2 weeks", res.RelativeDue)
}

func TestAddFoodItem_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.AddFoodItem(ctx, domain.AddFoodItemRequest{Name: "Milk", CategoryID: "frozen"}, f.userID.String())
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)

	_, err = f.svc.AddFoodItem(ctx, domain.AddFoodItemRequest{Name: "Milk", ExpiryDate: "10/03/2025"}, f.userID.String())
	assert.ErrorIs(t, err, domain.ErrInvalidExpiryDate)

	_, err = f.svc.AddFoodItem(ctx, domain.AddFoodItemRequest{Name: "Milk"}, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrParseUUID)

	res, err := f.svc.AddFoodItem(ctx, domain.AddFoodItemRequest{Name: "Yogurt", CategoryID: "dairy", ExpiryDate: "2025-03-10"}, f.userID.String())
	require.NoError(t, err)
	assert.Equal(t, expiry.StatusExpiring, res.Expiry.Status)
	assert.True(t, res.Expiry.Critical)
	assert.Equal(t, "Expires today", res.Expiry.Label)
}

func TestUpdateFoodItem(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	item := f.seed("Eggs", days(5), false)

	res, err := f.svc.UpdateFoodItem(ctx, item.ID.String(), domain.UpdateFoodItemRequest{ExpiryDate: "2025-03-11"}, f.userID.String())
	require.NoError(t, err)
	assert.Equal(t, expiry.StatusWarning, res.Expiry.Status)
	assert.Equal(t, "Expires tomorrow", res.Expiry.Label)

	res, err = f.svc.UpdateFoodItem(ctx, item.ID.String(), domain.UpdateFoodItemRequest{ClearExpiry: true}, f.userID.String())
	require.NoError(t, err)
	assert.Equal(t, expiry.StatusUnknown, res.Expiry.Status)
	assert.Empty(t, res.ExpiryDate)
	assert.Nil(t, res.Expiry.DaysRemaining)

	_, err = f.svc.UpdateFoodItem(ctx, item.ID.String(), domain.UpdateFoodItemRequest{Name: "x"}, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)

	_, err = f.svc.UpdateFoodItem(ctx, uuid.New().String(), domain.UpdateFoodItemRequest{Name: "x"}, f.userID.String())
	assert.ErrorIs(t, err, domain.ErrFoodItemNotFound)
}

func TestGetFoodItems_StatusFilterAndPagination(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seed("Old bread", days(-2), false)
	f.seed("Milk", days(0), false)
	f.seed("Spinach", days(2), false)
	f.seed("Rice", days(30), false)
	f.seed("Salt", nil, false)
	f.seed("Bruised apple", days(1), true)

	tests := []struct {
		status string
		want   []string
	}{
		{"", []string{"Old bread", "Milk", "Spinach", "Rice", "Salt", "Bruised apple"}},
		{"expired", []string{"Old bread"}},
		{"expiring", []string{"Milk"}},
		{"warning", []string{"Spinach"}},
		{"good", []string{"Rice"}},
		{"unknown", []string{"Salt"}},
		{"damaged", []string{"Bruised apple"}},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			res, err := f.svc.GetFoodItems(ctx, domain.GetFoodItemsRequest{Status: tt.status}, f.userID.String())
			require.NoError(t, err)
			names := make([]string, 0, len(res.Items))
			for _, item := range res.Items {
				names = append(names, item.Name)
			}
			assert.Equal(t, tt.want, names)
			assert.Equal(t, int64(len(tt.want)), res.Pagination.Total)
		})
	}

	page, err := f.svc.GetFoodItems(ctx, domain.GetFoodItemsRequest{
		PaginationRequest: domain.PaginationRequest{Page: 2, Limit: 4},
	}, f.userID.String())
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(2), page.Pagination.TotalPages)

	beyond, err := f.svc.GetFoodItems(ctx, domain.GetFoodItemsRequest{
		PaginationRequest: domain.PaginationRequest{Page: 9, Limit: 4},
	}, f.userID.String())
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)

	_, err = f.svc.GetFoodItems(ctx, domain.GetFoodItemsRequest{Status: "rotten"}, f.userID.String())
	assert.ErrorIs(t, err, domain.ErrInvalidStatusFilter)
}

func TestGetDashboardStats(t *testing.T) {
	f := newFixture()
	f.seed("Old bread", days(-2), false)
	f.seed("Milk", days(0), false)
	f.seed("Spinach", days(3), false)
	f.seed("Rice", days(4), false)
	f.seed("Salt", nil, false)
	f.seed("Bruised apple", days(-1), true)

	stats, err := f.svc.GetDashboardStats(context.Background(), f.userID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.DashboardStatsResponse{
		TotalItems:    6,
		ExpiredItems:  1,
		ExpiringItems: 1,
		WarningItems:  1,
		GoodItems:     1,
		UnknownItems:  1,
		DamagedItems:  1,
		CriticalItems: 2,
	}, stats)
}

func TestGetPantrySnapshot_SkipsDamaged(t *testing.T) {
	f := newFixture()
	f.seed("Chicken", days(1), false)
	f.seed("Salt", nil, false)
	f.seed("Bruised apple", days(1), true)

	snapshot, err := f.svc.GetPantrySnapshot(context.Background(), f.userID.String())
	require.NoError(t, err)
	require.Len(t, snapshot, 2)

	assert.Equal(t, "Chicken", snapshot[0].Name)
	assert.True(t, snapshot[0].Expiry.Equal(time.Date(2025, 3, 11, 0, 0, 0, 0, wib)))
	assert.True(t, snapshot[1].Expiry.IsZero())
}

func TestMarkAsDamaged(t *testing.T) {
	f := newFixture()
	item := f.seed("Tomato", days(2), false)

	err := f.svc.MarkAsDamaged(context.Background(), domain.MarkAsDamagedRequest{FoodItemID: item.ID.String()}, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)

	require.NoError(t, f.svc.MarkAsDamaged(context.Background(), domain.MarkAsDamagedRequest{FoodItemID: item.ID.String()}, f.userID.String()))
	assert.True(t, item.IsDamaged)
}

func TestDeleteFoodItem(t *testing.T) {
	f := newFixture()
	item := f.seed("Tomato", days(2), false)

	require.NoError(t, f.svc.DeleteFoodItem(context.Background(), item.ID.String(), f.userID.String()))
	assert.Empty(t, f.repo.items)

	err := f.svc.DeleteFoodItem(context.Background(), item.ID.String(), f.userID.String())
	assert.ErrorIs(t, err, domain.ErrFoodItemNotFound)
}

func TestExportPantry(t *testing.T) {
	f := newFixture()
	f.seed("Milk", days(0), false)
	f.seed("Rice", days(30), false)

	data, err := f.svc.ExportPantry(context.Background(), f.userID.String())
	require.NoError(t, err)

	book, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows("Pantry")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Expiry Date", rows[0][3])
	assert.Equal(t, []string{"Milk", "", "", "2025-03-10", "expiring"}, rows[1][:5])
}

func TestSendExpiryReminder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.SendExpiryReminder(ctx, f.userID.String())
	assert.ErrorIs(t, err, domain.ErrNothingToRemind)

	f.seed("Milk", days(0), false)
	f.seed("Spinach", days(2), false)
	f.seed("Rice", days(30), false)
	f.seed("Bruised apple", days(-1), true)

	res, err := f.svc.SendExpiryReminder(ctx, f.userID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.ExpiryReminderResponse{SentTo: "sari@example.com", Critical: 1, Warning: 1}, res)

	require.Len(t, f.mailer.sent, 1)
	assert.Contains(t, f.mailer.sent[0].body, "Milk (Expires today, 2025-03-10)")
	assert.Contains(t, f.mailer.sent[0].body, "Spinach")
	assert.NotContains(t, f.mailer.sent[0].body, "Bruised apple")

	f.mailer.err = errors.New("smtp down")
	_, err = f.svc.SendExpiryReminder(ctx, f.userID.String())
	assert.ErrorContains(t, err, "smtp down")

	f.users.user.Email = ""
	_, err = f.svc.SendExpiryReminder(ctx, f.userID.String())
	assert.ErrorIs(t, err, domain.ErrReminderMissingTarget)
}
