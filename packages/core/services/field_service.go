package services

import (
	"errors"

	"core/apperrors"
	"core/models"

	"gorm.io/gorm"
)

type FieldService struct {
	db *gorm.DB
}

func NewFieldService(db *gorm.DB) *FieldService {
	return &FieldService{
		db: db,
	}
}

func (s *FieldService) CreateField(req models.CreateFieldRequest) (*models.Field, error) {
	field := &models.Field{
		Name:       req.Name,
		Format:     req.Format,
		HourlyRate: req.HourlyRate,
		Active:     true,
	}

	if err := s.db.Create(field).Error; err != nil {
		return nil, apperrors.Storage(err)
	}

	return field, nil
}

func (s *FieldService) GetFieldByID(id uint) (*models.Field, error) {
	var field models.Field

	if err := s.db.First(&field, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("field %d not found", id)
		}
		return nil, apperrors.Storage(err)
	}

	return &field, nil
}

func (s *FieldService) GetAllFields(activeOnly bool) ([]models.Field, error) {
	var fields []models.Field

	query := s.db.Order("name ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	if err := query.Find(&fields).Error; err != nil {
		return nil, apperrors.Storage(err)
	}

	return fields, nil
}

func (s *FieldService) UpdateField(id uint, req models.UpdateFieldRequest) (*models.Field, error) {
	if _, err := s.GetFieldByID(id); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Format != nil {
		updates["format"] = *req.Format
	}
	if req.HourlyRate != nil {
		updates["hourly_rate"] = *req.HourlyRate
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) > 0 {
		if err := s.db.Model(&models.Field{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, apperrors.Storage(err)
		}
	}

	return s.GetFieldByID(id)
}

func (s *FieldService) DeleteField(id uint) error {
	result := s.db.Delete(&models.Field{}, id)
	if result.Error != nil {
		return apperrors.Storage(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("field %d not found", id)
	}
	return nil
}

func (s *FieldService) CreateGroup(req models.CreateFieldGroupRequest) (*models.FieldGroup, error) {
	group := &models.FieldGroup{Name: req.Name}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return apperrors.Storage(err)
		}
		return s.replaceMembers(tx, group.ID, req.FieldIDs)
	})
	if err != nil {
		return nil, err
	}

	return s.GetGroupByID(group.ID)
}

func (s *FieldService) GetGroupByID(id uint) (*models.FieldGroup, error) {
	var group models.FieldGroup

	if err := s.db.Preload("Members.Field").First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("field group %d not found", id)
		}
		return nil, apperrors.Storage(err)
	}

	return &group, nil
}

func (s *FieldService) GetAllGroups() ([]models.FieldGroup, error) {
	var groups []models.FieldGroup

	if err := s.db.Preload("Members.Field").Order("name ASC").Find(&groups).Error; err != nil {
		return nil, apperrors.Storage(err)
	}

	return groups, nil
}

// SetGroupMembers replaces the whole membership set of a group. Prior
// members are removed in the same transaction that inserts the new set.
func (s *FieldService) SetGroupMembers(groupID uint, fieldIDs []uint) (*models.FieldGroup, error) {
	if _, err := s.GetGroupByID(groupID); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", groupID).Delete(&models.FieldGroupMember{}).Error; err != nil {
			return apperrors.Storage(err)
		}
		return s.replaceMembers(tx, groupID, fieldIDs)
	})
	if err != nil {
		return nil, err
	}

	return s.GetGroupByID(groupID)
}

func (s *FieldService) DeleteGroup(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&models.FieldGroupMember{}).Error; err != nil {
			return apperrors.Storage(err)
		}

		result := tx.Delete(&models.FieldGroup{}, id)
		if result.Error != nil {
			return apperrors.Storage(result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.NotFound("field group %d not found", id)
		}
		return nil
	})
}

func (s *FieldService) replaceMembers(tx *gorm.DB, groupID uint, fieldIDs []uint) error {
	for _, fieldID := range fieldIDs {
		var field models.Field
		if err := tx.First(&field, fieldID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("field %d not found", fieldID)
			}
			return apperrors.Storage(err)
		}

		member := models.FieldGroupMember{GroupID: groupID, FieldID: fieldID}
		if err := tx.Create(&member).Error; err != nil {
			return apperrors.Storage(err)
		}
	}
	return nil
}

// PeersOf resolves every field whose occupancy must be considered when
// checking availability of fieldID: all members of all groups the field
// belongs to, plus the field itself. Membership is one hop; two fields
// grouped with a common third field but not with each other are not
// peers of each other.
func (s *FieldService) PeersOf(fieldID uint) ([]uint, error) {
	return s.peersOfTx(s.db, fieldID)
}

// peersOfTx is PeersOf on the caller's transaction, so a conflict scan
// and its peer lookup read the same snapshot.
func (s *FieldService) peersOfTx(tx *gorm.DB, fieldID uint) ([]uint, error) {
	peers, err := s.peersOfManyTx(tx, []uint{fieldID})
	if err != nil {
		return nil, err
	}
	return peers[fieldID], nil
}

// PeersOfMany resolves peer sets for several fields in two queries.
func (s *FieldService) PeersOfMany(fieldIDs []uint) (map[uint][]uint, error) {
	return s.peersOfManyTx(s.db, fieldIDs)
}

func (s *FieldService) peersOfManyTx(tx *gorm.DB, fieldIDs []uint) (map[uint][]uint, error) {
	result := make(map[uint][]uint, len(fieldIDs))
	if len(fieldIDs) == 0 {
		return result, nil
	}

	var memberships []models.FieldGroupMember
	if err := tx.Where("field_id IN ?", fieldIDs).Find(&memberships).Error; err != nil {
		return nil, apperrors.Storage(err)
	}

	groupIDs := make([]uint, 0, len(memberships))
	groupsByField := make(map[uint][]uint)
	for _, m := range memberships {
		groupIDs = append(groupIDs, m.GroupID)
		groupsByField[m.FieldID] = append(groupsByField[m.FieldID], m.GroupID)
	}

	fieldsByGroup := make(map[uint][]uint)
	if len(groupIDs) > 0 {
		var members []models.FieldGroupMember
		if err := tx.Where("group_id IN ?", groupIDs).Find(&members).Error; err != nil {
			return nil, apperrors.Storage(err)
		}
		for _, m := range members {
			fieldsByGroup[m.GroupID] = append(fieldsByGroup[m.GroupID], m.FieldID)
		}
	}

	for _, fieldID := range fieldIDs {
		seen := map[uint]bool{fieldID: true}
		peers := []uint{fieldID}
		for _, groupID := range groupsByField[fieldID] {
			for _, peer := range fieldsByGroup[groupID] {
				if !seen[peer] {
					seen[peer] = true
					peers = append(peers, peer)
				}
			}
		}
		result[fieldID] = peers
	}

	return result, nil
}
