package server

import (
	"sync"

	"puzzle-week/internal/event"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validatorOnce sync.Once

func registerValidators() {
	validatorOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = engine.RegisterValidation("game", func(fl validator.FieldLevel) bool {
			_, err := event.ParseGame(fl.Field().String())
			return err == nil
		})
		_ = engine.RegisterValidation("eventday", func(fl validator.FieldLevel) bool {
			day := fl.Field().Int()
			return day >= 1 && day <= event.MaxDay
		})
	})
}
