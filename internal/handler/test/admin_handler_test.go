package test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"voiceunheard/internal/models"
	"voiceunheard/internal/service"
	"voiceunheard/internal/state"
)

func TestGetQueueHandler(t *testing.T) {
	t.Run("очередь модератора", func(t *testing.T) {
		handler, m := createTestHandler()
		st := moderatorState()
		st.AdminQueue = []models.Story{{ID: "p1"}, {ID: "p2"}}
		st.PendingCount = 2
		m.feed.On("LoadModerationQueue", mock.Anything).Return(st, nil)

		rr := httptest.NewRecorder()
		handler.GetQueue(rr, httptest.NewRequest(http.MethodGet, "/api/admin/queue", nil))

		response := assertJSONSuccess(t, rr, http.StatusOK)
		assert.Len(t, response["stories"], 2)
		assert.Equal(t, float64(2), response["pendingCount"])
	})

	t.Run("без прав", func(t *testing.T) {
		handler, m := createTestHandler()
		m.feed.On("LoadModerationQueue", mock.Anything).Return(state.Initial(), service.ErrForbidden)

		rr := httptest.NewRecorder()
		handler.GetQueue(rr, httptest.NewRequest(http.MethodGet, "/api/admin/queue", nil))

		assertJSONError(t, rr, http.StatusForbidden, "недостаточно прав")
	})
}

func TestModerationHandlers(t *testing.T) {
	after := moderatorState()
	after.AdminQueue = []models.Story{}
	after.PendingCount = 0

	tests := []struct {
		name   string
		method string
	}{
		{
			name:   "одобрение",
			method: "Approve",
		},
		{
			name:   "отклонение",
			method: "Reject",
		},
		{
			name:   "проверка",
			method: "ToggleVerify",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, m := createTestHandler()
			m.moderation.On(tt.method, mock.Anything, "p1").Return(after, nil)

			req := mux.SetURLVars(httptest.NewRequest(http.MethodPost, "/api/admin/stories/p1", nil), map[string]string{"id": "p1"})
			rr := httptest.NewRecorder()

			switch tt.method {
			case "Approve":
				handler.ApproveStory(rr, req)
			case "Reject":
				handler.RejectStory(rr, req)
			case "ToggleVerify":
				handler.ToggleVerify(rr, req)
			}

			response := assertJSONSuccess(t, rr, http.StatusOK)
			assert.Equal(t, []interface{}{}, response["stories"])
			assert.Equal(t, float64(0), response["pendingCount"])
			m.moderation.AssertExpectations(t)
		})
	}
}
