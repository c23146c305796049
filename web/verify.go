package web

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"regexp"
	"strings"

	"github.com/unrolled/render"
)

// Verification codes are logged rather than delivered. Wiring in a real
// SMS/email provider stays out of this service.

type sendCodeRequest struct {
	TeamID string `json:"teamId"`
	Method string `json:"method"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
}

type sendCodeResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	MaskedContact string `json:"maskedContact"`
}

func sendCodeHandler(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sendCodeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
			return
		}

		if req.TeamID == "" || req.Method == "" {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: "Missing required fields"})
			return
		}

		var masked string
		switch req.Method {
		case "email":
			if req.Email == "" {
				render.JSON(w, http.StatusBadRequest, errorResponse{Error: "Email address required"})
				return
			}
			masked = maskEmail(req.Email)
		case "sms":
			if req.Phone == "" {
				render.JSON(w, http.StatusBadRequest, errorResponse{Error: "Phone number required"})
				return
			}
			masked = maskPhone(req.Phone)
		default:
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid method"})
			return
		}

		code := generateVerificationCode()
		log.Printf("verification code for team %s via %s (%s): %s", req.TeamID, req.Method, masked, code)

		render.JSON(w, http.StatusOK, sendCodeResponse{
			Success:       true,
			Message:       fmt.Sprintf("Verification code sent via %s", req.Method),
			MaskedContact: masked,
		})
	}
}

func generateVerificationCode() string {
	return fmt.Sprintf("%06d", rand.Intn(900000)+100000)
}

// maskEmail keeps the first and last character of the local part, so
// "teamowner@example.com" becomes "t*******r@example.com".
func maskEmail(email string) string {
	local, domain, found := strings.Cut(email, "@")
	if !found || len(local) < 3 {
		return email
	}
	masked := local[:1] + strings.Repeat("*", len(local)-2) + local[len(local)-1:]
	return masked + "@" + domain
}

var phoneMaskRegex = regexp.MustCompile(`(\d{3})\d{3}(\d{4})`)

func maskPhone(phone string) string {
	return phoneMaskRegex.ReplaceAllString(phone, "$1***$2")
}
