package rekuest

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	zhTranslations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"eldenlens.dev/backend/internal/pkg/pgerr"
	"eldenlens.dev/backend/internal/util"
	"eldenlens.dev/backend/internal/util/i18n"
)

var Validate = util.NewValidator()

func init() {
	entr, _ := i18n.UT.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(Validate, entr); err != nil {
		log.Warn().Err(err).Str("locale", "en").Msg("could not register translation")
	}

	zhtr, _ := i18n.UT.GetTranslator("zh")
	if err := zhTranslations.RegisterDefaultTranslations(Validate, zhtr); err != nil {
		log.Warn().Err(err).Str("locale", "zh").Msg("could not register translation")
	}

	for l, t := range map[string]ut.Translator{"en": entr, "zh": zhtr} {
		err := Validate.RegisterTranslation("nonblank", t, func(ut ut.Translator) error {
			return nil
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("required", fe.Field())
			return t
		})
		if err != nil {
			log.Warn().Err(err).Str("locale", l).Msg("could not register translation for function nonblank")
		}
	}
}

type ErrorResponse struct {
	Field     string `json:"field,omitempty"`
	Violation string `json:"violation"`
	Message   string `json:"message"`
}

// TranslatorFromCtx returns the translator picked by the i18n middleware, or
// the fallback translator when the middleware did not run.
func TranslatorFromCtx(ctx *fiber.Ctx) ut.Translator {
	if t, ok := ctx.Locals("T").(ut.Translator); ok {
		return t
	}
	return i18n.UT.GetFallback()
}

func translate(utt ut.Translator, ve validator.ValidationErrors) []*ErrorResponse {
	trans := make([]*ErrorResponse, 0, len(ve))
	for _, fe := range ve {
		trans = append(trans, &ErrorResponse{
			Field:     fe.Namespace(),
			Violation: fe.Tag(),
			Message:   strings.TrimSpace(fe.Translate(utt)),
		})
	}
	return trans
}

func validateStruct(ctx *fiber.Ctx, s any) []*ErrorResponse {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []*ErrorResponse{{Violation: "invalid", Message: err.Error()}}
	}
	return translate(TranslatorFromCtx(ctx), errs)
}

// ValidBody parses the request body into dest, which must be a pointer, and
// validates it.
func ValidBody(ctx *fiber.Ctx, dest any) error {
	if err := ctx.BodyParser(dest); err != nil {
		return pgerr.ErrInvalidReq.Msg("invalid request: %s", err)
	}

	return ValidStruct(ctx, dest)
}

// ValidQuery parses the query string into dest, which must be a pointer, and
// validates it. Fields absent from the query keep their value in dest.
func ValidQuery(ctx *fiber.Ctx, dest any) error {
	if err := ctx.QueryParser(dest); err != nil {
		return pgerr.ErrInvalidReq.Msg("invalid query: %s", err)
	}

	return ValidStruct(ctx, dest)
}

func ValidStruct(ctx *fiber.Ctx, dest any) error {
	if violations := validateStruct(ctx, dest); violations != nil {
		return pgerr.NewInvalidViolations(violations)
	}

	return nil
}

func ValidVar(ctx *fiber.Ctx, field any, tag string) error {
	err := Validate.Var(field, tag)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return pgerr.ErrInvalidReq.Msg("invalid request: %s", err)
	}
	return pgerr.NewInvalidViolations(translate(TranslatorFromCtx(ctx), errs))
}
