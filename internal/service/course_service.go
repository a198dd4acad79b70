package service

import (
	"errors"

	"github.com/sohinisarkar2002/EduAssist/internal/model"
	"github.com/sohinisarkar2002/EduAssist/internal/repository"
	"gorm.io/gorm"
)

type CourseService struct {
	repo *repository.CourseRepository
}

func NewCourseService(repo *repository.CourseRepository) *CourseService {
	return &CourseService{repo: repo}
}

type CreateCourseInput struct {
	Code        string `json:"code" binding:"required,max=20"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (s *CourseService) Create(input CreateCourseInput) (*model.Course, error) {
	if existing, err := s.repo.FindByCode(input.Code); err == nil {
		return existing, errors.New("course code already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	course := &model.Course{
		Code:        input.Code,
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.repo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) List() ([]model.Course, error) {
	return s.repo.FindAll()
}

func (s *CourseService) Get(id uint) (*model.Course, error) {
	return s.repo.FindByID(id)
}
