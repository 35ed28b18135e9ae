package presenter

import (
	"github.com/johnquangdev/meetingmind/internal/adapter/dto"
	"github.com/johnquangdev/meetingmind/internal/domain/entities"
)

// ToMeetingResponse converts a Meeting entity to MeetingResponse DTO
func ToMeetingResponse(m *entities.Meeting) *dto.MeetingResponse {
	if m == nil {
		return nil
	}

	participants := m.Participants
	if participants == nil {
		participants = []string{}
	}

	return &dto.MeetingResponse{
		ID:           m.ID,
		Title:        m.Title,
		Participants: participants,
		MeetingDate:  m.MeetingDate,
		Notes:        m.Notes,
		Summary:      m.Summary,
		Status:       m.Status,
		Terminal:     m.Status.IsTerminal(),
		CreatedAt:    m.CreatedAt,
	}
}

// ToMeetingListResponse converts meetings for list views; notes are omitted
func ToMeetingListResponse(meetings []entities.Meeting) []dto.MeetingResponse {
	out := make([]dto.MeetingResponse, 0, len(meetings))
	for i := range meetings {
		resp := ToMeetingResponse(&meetings[i])
		resp.Notes = ""
		out = append(out, *resp)
	}
	return out
}
