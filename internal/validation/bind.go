package validation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

// InvalidOrderMessage is the client-facing error for a malformed order payload.
const InvalidOrderMessage = "訂單資料格式錯誤"

// BindAndValidate binds JSON body into `out` and runs validation.
// If either step fails, it writes a 400 `{"error": ...}` response and returns
// the error for the handler to log and short-circuit.
func BindAndValidate(c *gin.Context, out interface{}, v *validatorv10.Validate) error {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": InvalidOrderMessage})
		return err
	}

	if err := v.Struct(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": InvalidOrderMessage})
		return err
	}
	return nil
}

// FieldErrors flattens validator errors into namespace -> message for logging.
func FieldErrors(err error) map[string]string {
	out := map[string]string{}
	var ve validatorv10.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[fe.StructNamespace()] = fe.Error()
		}
	} else if err != nil {
		out["error"] = err.Error()
	}
	return out
}
