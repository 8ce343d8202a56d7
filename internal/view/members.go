package view

import "github.com/aidar/project-hub/internal/domain"

// MembersHeading is the heading above the member rows.
const MembersHeading = "Members"

// MemberRow is one membership. Key is the membership's ID.
type MemberRow struct {
	Key      string
	Name     string
	Username string
	Role     domain.Role
}

// MemberList is the list of members of one project.
type MemberList struct {
	Heading string
	Rows    []MemberRow
}

// BuildMemberList keeps the order of members.
func BuildMemberList(members []domain.MemberWithUser) MemberList {
	rows := make([]MemberRow, 0, len(members))
	for _, m := range members {
		rows = append(rows, MemberRow{
			Key:      m.ID,
			Name:     m.User.Name,
			Username: m.User.Username,
			Role:     m.Role,
		})
	}
	return MemberList{Heading: MembersHeading, Rows: rows}
}
