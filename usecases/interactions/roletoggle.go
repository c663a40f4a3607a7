package interactions

import (
	"context"
	"log"
	"slices"

	"kronos/clients"
)

// RoleToggler reconciles one self-service role toggle against the live
// guild state. It decides add-or-remove from the member's role snapshot,
// issues exactly one remote mutation, and recomputes the snapshot locally
// so the button UI can be redrawn without re-fetching the member.
type RoleToggler struct {
	discordClient clients.DiscordClient
}

func NewRoleToggler(discordClient clients.DiscordClient) *RoleToggler {
	return &RoleToggler{discordClient: discordClient}
}

// Toggle flips membership of roleID for the given member. On success the
// returned slice is the updated snapshot; on failure the remote state is
// left as-is and the snapshot comes back unchanged alongside the error.
// The input slice is never mutated.
func (t *RoleToggler) Toggle(
	ctx context.Context,
	guildID, userID, roleID string,
	memberRoles []string,
) ([]string, error) {
	if index := slices.Index(memberRoles, roleID); index >= 0 {
		if err := t.discordClient.RemoveMemberRole(ctx, guildID, userID, roleID); err != nil {
			return memberRoles, err
		}
		updated := slices.Delete(slices.Clone(memberRoles), index, index+1)
		log.Printf("✅ Removed role %s from member %s in guild %s", roleID, userID, guildID)
		return updated, nil
	}

	if err := t.discordClient.AddMemberRole(ctx, guildID, userID, roleID); err != nil {
		return memberRoles, err
	}
	// Position is cosmetic; prepending keeps the freshly granted role
	// visible first.
	updated := append([]string{roleID}, memberRoles...)
	log.Printf("✅ Added role %s to member %s in guild %s", roleID, userID, guildID)
	return updated, nil
}
