package food

import (
	"Pantrii-Backend/domain"
	"Pantrii-Backend/entities"
	"Pantrii-Backend/internal/utils"
	"Pantrii-Backend/internal/utils/export"
	"Pantrii-Backend/internal/utils/mailing"
	"Pantrii-Backend/internal/utils/storage"
	"Pantrii-Backend/pkg/expiry"
	"Pantrii-Backend/pkg/matching"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const reminderSubject = "Pantrii: food expiring soon"

type (
	FoodService interface {
		AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest, userID string) (domain.FoodItemResponse, error)
		UpdateFoodItem(ctx context.Context, id string, req domain.UpdateFoodItemRequest, userID string) (domain.FoodItemResponse, error)
		DeleteFoodItem(ctx context.Context, id string, userID string) error
		GetFoodItems(ctx context.Context, req domain.GetFoodItemsRequest, userID string) (domain.FoodItemListResponse, error)
		GetFoodItemByID(ctx context.Context, id string, userID string) (domain.FoodItemResponse, error)
		UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest, userID string) (domain.FoodItemResponse, error)
		MarkAsDamaged(ctx context.Context, req domain.MarkAsDamagedRequest, userID string) error
		GetDashboardStats(ctx context.Context, userID string) (domain.DashboardStatsResponse, error)
		GetCategories() []domain.FoodCategory

		// GetPantrySnapshot returns the undamaged items in the shape the
		// matching engine consumes.
		GetPantrySnapshot(ctx context.Context, userID string) ([]matching.PantryItem, error)
		ExportPantry(ctx context.Context, userID string) ([]byte, error)
		SendExpiryReminder(ctx context.Context, userID string) (domain.ExpiryReminderResponse, error)
	}

	// UserLookup resolves the reminder recipient.
	UserLookup interface {
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
	}

	foodService struct {
		foodRepository FoodRepository
		s3             storage.AwsS3
		mailer         mailing.Mailer
		users          UserLookup
		loc            *time.Location
		now            func() time.Time
	}
)

func NewFoodService(foodRepository FoodRepository, s3 storage.AwsS3, mailer mailing.Mailer, users UserLookup) FoodService {
	return &foodService{
		foodRepository: foodRepository,
		s3:             s3,
		mailer:         mailer,
		users:          users,
		loc:            utils.GetLocation(),
		now:            time.Now,
	}
}

func (s *foodService) AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest, userID string) (domain.FoodItemResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.FoodItemResponse{}, domain.ErrParseUUID
	}

	categoryID, err := resolveCategory(req.CategoryID)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	var expiryDate time.Time
	if req.ExpiryDate == "" {
		expiryDate = expiry.DefaultExpiryDate(s.clock(), expiry.DefaultExpiryDays)
	} else if expiryDate, err = expiry.Parse(req.ExpiryDate, s.loc); err != nil {
		return domain.FoodItemResponse{}, domain.ErrInvalidExpiryDate
	}

	foodItem := &entities.FoodItem{
		ID:         uuid.New(),
		UserID:     userUUID,
		Name:       strings.TrimSpace(req.Name),
		Quantity:   strings.TrimSpace(req.Quantity),
		CategoryID: categoryID,
		ExpiryDate: &expiryDate,
		Notes:      req.Notes,
	}

	if err := s.foodRepository.AddFoodItem(ctx, foodItem); err != nil {
		return domain.FoodItemResponse{}, err
	}

	return s.toResponse(foodItem), nil
}

func (s *foodService) UpdateFoodItem(ctx context.Context, id string, req domain.UpdateFoodItemRequest, userID string) (domain.FoodItemResponse, error) {
	foodItem, err := s.getOwnedItem(ctx, id, userID)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	if req.Name != "" {
		foodItem.Name = strings.TrimSpace(req.Name)
	}

	if req.Quantity != "" {
		foodItem.Quantity = strings.TrimSpace(req.Quantity)
	}

	if req.CategoryID != "" {
		if !domain.IsValidFoodCategory(req.CategoryID) {
			return domain.FoodItemResponse{}, domain.ErrInvalidCategory
		}
		foodItem.CategoryID = req.CategoryID
	}

	if req.Notes != "" {
		foodItem.Notes = req.Notes
	}

	switch {
	case req.ClearExpiry:
		foodItem.ExpiryDate = nil
	case req.ExpiryDate != "":
		expiryDate, err := expiry.Parse(req.ExpiryDate, s.loc)
		if err != nil {
			return domain.FoodItemResponse{}, domain.ErrInvalidExpiryDate
		}
		foodItem.ExpiryDate = &expiryDate
	}

	if err := s.foodRepository.UpdateFoodItem(ctx, foodItem); err != nil {
		return domain.FoodItemResponse{}, err
	}

	return s.toResponse(foodItem), nil
}

func (s *foodService) DeleteFoodItem(ctx context.Context, id string, userID string) error {
	foodItem, err := s.getOwnedItem(ctx, id, userID)
	if err != nil {
		return err
	}

	if foodItem.ImageURL != "" && s.s3 != nil {
		if objectKey := s.s3.GetObjectKeyFromLink(foodItem.ImageURL); objectKey != "" {
			if err := s.s3.DeleteFile(objectKey); err != nil {
				utils.LogWarn("failed to delete food image", zap.String("key", objectKey), zap.Error(err))
			}
		}
	}

	return s.foodRepository.DeleteFoodItem(ctx, id)
}

func (s *foodService) GetFoodItems(ctx context.Context, req domain.GetFoodItemsRequest, userID string) (domain.FoodItemListResponse, error) {
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status == "" {
		status = domain.StatusFilterAll
	}
	if !domain.IsValidStatusFilter(status) {
		return domain.FoodItemListResponse{}, domain.ErrInvalidStatusFilter
	}

	foodItems, err := s.foodRepository.GetFoodItemsByUser(ctx, userID)
	if err != nil {
		return domain.FoodItemListResponse{}, err
	}

	filtered := make([]domain.FoodItemResponse, 0, len(foodItems))
	for _, item := range foodItems {
		res := s.toResponse(item)
		if matchesStatus(res, status) {
			filtered = append(filtered, res)
		}
	}

	page := req.PaginationRequest.Normalize()
	total := int64(len(filtered))

	start := page.Offset()
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + page.Limit
	if end > len(filtered) {
		end = len(filtered)
	}

	return domain.FoodItemListResponse{
		Items:      filtered[start:end],
		Pagination: domain.NewPaginationResponse(page, total),
	}, nil
}

func (s *foodService) GetFoodItemByID(ctx context.Context, id string, userID string) (domain.FoodItemResponse, error) {
	foodItem, err := s.getOwnedItem(ctx, id, userID)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}
	return s.toResponse(foodItem), nil
}

func (s *foodService) UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest, userID string) (domain.FoodItemResponse, error) {
	foodItem, err := s.getOwnedItem(ctx, req.FoodItemID, userID)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}
	if s.s3 == nil {
		return domain.FoodItemResponse{}, storage.ErrStorageNotReady
	}

	fileName := fmt.Sprintf("food-item-%s", foodItem.ID.String())
	var objectKey string
	var uploadErr error

	existingKey := ""
	if foodItem.ImageURL != "" {
		existingKey = s.s3.GetObjectKeyFromLink(foodItem.ImageURL)
	}
	if existingKey != "" {
		objectKey, uploadErr = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
	} else {
		objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "food-items", storage.AllowImage...)
	}
	if uploadErr != nil {
		return domain.FoodItemResponse{}, uploadErr
	}

	foodItem.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.foodRepository.UpdateFoodItem(ctx, foodItem); err != nil {
		return domain.FoodItemResponse{}, err
	}

	return s.toResponse(foodItem), nil
}

func (s *foodService) MarkAsDamaged(ctx context.Context, req domain.MarkAsDamagedRequest, userID string) error {
	if _, err := s.getOwnedItem(ctx, req.FoodItemID, userID); err != nil {
		return err
	}
	return s.foodRepository.MarkFoodItemAsDamaged(ctx, req.FoodItemID)
}

func (s *foodService) GetDashboardStats(ctx context.Context, userID string) (domain.DashboardStatsResponse, error) {
	foodItems, err := s.foodRepository.GetFoodItemsByUser(ctx, userID)
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	now := s.clock()
	stats := domain.DashboardStatsResponse{TotalItems: len(foodItems)}
	for _, item := range foodItems {
		if item.IsDamaged {
			stats.DamagedItems++
			continue
		}

		st := expiry.Classify(s.expiryOf(item), now)
		switch st.Status {
		case expiry.StatusExpired:
			stats.ExpiredItems++
		case expiry.StatusExpiring:
			stats.ExpiringItems++
		case expiry.StatusWarning:
			stats.WarningItems++
		case expiry.StatusGood:
			stats.GoodItems++
		default:
			stats.UnknownItems++
		}
		if st.Critical {
			stats.CriticalItems++
		}
	}

	return stats, nil
}

func (s *foodService) GetCategories() []domain.FoodCategory {
	return domain.FoodCategories
}

func (s *foodService) GetPantrySnapshot(ctx context.Context, userID string) ([]matching.PantryItem, error) {
	foodItems, err := s.foodRepository.GetFoodItemsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	snapshot := make([]matching.PantryItem, 0, len(foodItems))
	for _, item := range foodItems {
		if item.IsDamaged {
			continue
		}
		snapshot = append(snapshot, matching.PantryItem{
			ID:     item.ID.String(),
			Name:   item.Name,
			Expiry: s.expiryOf(item),
		})
	}
	return snapshot, nil
}

func (s *foodService) ExportPantry(ctx context.Context, userID string) ([]byte, error) {
	foodItems, err := s.foodRepository.GetFoodItemsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows := make([][]any, 0, len(foodItems))
	for _, item := range foodItems {
		res := s.toResponse(item)
		rows = append(rows, []any{
			res.Name,
			res.Quantity,
			categoryName(res.CategoryID),
			res.ExpiryDate,
			res.Expiry.Status,
			res.Expiry.Label,
			res.IsDamaged,
			res.Notes,
		})
	}

	data, err := export.WriteXLSX(export.Sheet{
		Name:   "Pantry",
		Header: []string{"Name", "Quantity", "Category", "Expiry Date", "Status", "Label", "Damaged", "Notes"},
		Rows:   rows,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build pantry workbook: %w", err)
	}
	return data, nil
}

func (s *foodService) SendExpiryReminder(ctx context.Context, userID string) (domain.ExpiryReminderResponse, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return domain.ExpiryReminderResponse{}, err
	}
	if user.Email == "" {
		return domain.ExpiryReminderResponse{}, domain.ErrReminderMissingTarget
	}

	foodItems, err := s.foodRepository.GetFoodItemsByUser(ctx, userID)
	if err != nil {
		return domain.ExpiryReminderResponse{}, err
	}

	var critical, warning []mailing.ReminderLine
	now := s.clock()
	for _, item := range foodItems {
		if item.IsDamaged {
			continue
		}
		date := s.expiryOf(item)
		st := expiry.Classify(date, now)
		line := mailing.ReminderLine{Name: item.Name, Label: st.Label, Date: expiry.FormatDate(date)}
		switch {
		case st.Critical:
			critical = append(critical, line)
		case st.Status == expiry.StatusWarning:
			warning = append(warning, line)
		}
	}

	if len(critical) == 0 && len(warning) == 0 {
		return domain.ExpiryReminderResponse{}, domain.ErrNothingToRemind
	}

	body, err := mailing.ExpiryReminderBody(user.Name, utils.GetConfig("APP_URL"), critical, warning)
	if err != nil {
		return domain.ExpiryReminderResponse{}, err
	}
	if err := s.mailer.Send(user.Email, reminderSubject, body); err != nil {
		return domain.ExpiryReminderResponse{}, fmt.Errorf("failed to send reminder: %w", err)
	}

	utils.LogInfo("expiry reminder sent",
		zap.String("user_id", userID),
		zap.Int("critical", len(critical)),
		zap.Int("warning", len(warning)),
	)

	return domain.ExpiryReminderResponse{
		SentTo:   user.Email,
		Critical: len(critical),
		Warning:  len(warning),
	}, nil
}

func (s *foodService) getOwnedItem(ctx context.Context, id string, userID string) (*entities.FoodItem, error) {
	foodItem, err := s.foodRepository.GetFoodItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFoodItemNotFound
		}
		return nil, err
	}

	if foodItem.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedAccess
	}
	return foodItem, nil
}

func (s *foodService) clock() time.Time {
	return s.now().In(s.loc)
}

// expiryOf reads the stored calendar date in the service location. The zero
// time means the item has no expiry date.
func (s *foodService) expiryOf(item *entities.FoodItem) time.Time {
	if item.ExpiryDate == nil || item.ExpiryDate.IsZero() {
		return time.Time{}
	}
	d := *item.ExpiryDate
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, s.loc)
}

func (s *foodService) toResponse(item *entities.FoodItem) domain.FoodItemResponse {
	date := s.expiryOf(item)
	now := s.clock()

	return domain.FoodItemResponse{
		ID:          item.ID.String(),
		Name:        item.Name,
		Quantity:    item.Quantity,
		CategoryID:  item.CategoryID,
		ExpiryDate:  expiry.FormatDate(date),
		Notes:       item.Notes,
		ImageURL:    item.ImageURL,
		IsDamaged:   item.IsDamaged,
		Expiry:      expiry.Classify(date, now),
		RelativeDue: expiry.RelativeDescription(date, now),
		CreatedAt:   item.CreatedAt,
	}
}

func matchesStatus(res domain.FoodItemResponse, status string) bool {
	switch status {
	case domain.StatusFilterAll:
		return true
	case domain.StatusDamaged:
		return res.IsDamaged
	default:
		return !res.IsDamaged && res.Expiry.Status == status
	}
}

func resolveCategory(id string) (string, error) {
	if id == "" {
		return domain.DefaultFoodCategory, nil
	}
	if !domain.IsValidFoodCategory(id) {
		return "", domain.ErrInvalidCategory
	}
	return id, nil
}

func categoryName(id string) string {
	for _, c := range domain.FoodCategories {
		if c.ID == id {
			return c.Name
		}
	}
	return id
}
