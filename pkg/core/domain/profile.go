package domain

import (
	"fmt"
	"slices"
	"strings"
)

const (
	OwnerName  = "John Kendric"
	OwnerEmail = "john@kendric.dev"

	Biography = "John Kendric is a Senior Frontend Developer specializing in React, TypeScript, and UI/UX."

	ChatGreeting = "Hi! I am John Kendric's AI twin. Want to know about his projects at Tech Giant Inc or his React expertise? Ask away!"
	ChatApology  = "I'm having a bit of a brain freeze. Could you try asking that again?"
)

// ChatInstruction builds the fixed system instruction for the chat widget
// from the built-in biography, skills and work history.
func ChatInstruction() string {
	var skills []string
	for _, s := range DefaultSkills() {
		skills = append(skills, fmt.Sprintf("%s (%d%%)", s.Name, s.Percentage))
	}
	var history []string
	for _, e := range DefaultExperience() {
		history = append(history, fmt.Sprintf("%s at %s (%s): %s", e.Role, e.Company, e.Period, e.Description))
	}
	profile := fmt.Sprintf("Bio: %s\nSkills: %s.\nWork History: %s.",
		Biography, strings.Join(skills, ", "), strings.Join(history, " | "))

	return fmt.Sprintf(`You are %s's professional AI representative.
Use this context: %s
Always be helpful, concise, and enthusiastic. If you don't know something specifically,
invite them to use the contact form or email %s directly at %s.`,
		OwnerName, profile, strings.Fields(OwnerName)[0], OwnerEmail)
}

// BookingService is one entry of the booking wizard's first step.
type BookingService struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func BookingServices() []BookingService {
	return []BookingService{
		{ID: "dev", Title: "Web Development", Description: "Discuss your next big web project."},
		{ID: "uiux", Title: "UI/UX Design", Description: "Visual strategy and user experience."},
		{ID: "consult", Title: "Consultancy", Description: "1-on-1 technical advice."},
	}
}

func TimeSlots() []string {
	return []string{"09:00 AM", "11:00 AM", "02:00 PM", "04:00 PM", "06:00 PM"}
}

func IsTimeSlot(slot string) bool {
	return slices.Contains(TimeSlots(), slot)
}
