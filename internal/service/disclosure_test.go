package service

import (
	"alumni_connect_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func tierPtr(t model.MentorshipTier) *model.MentorshipTier {
	return &t
}

func strPtr(s string) *string {
	return &s
}

func acceptedRequest(tier model.MentorshipTier) *model.MentorshipRequest {
	return &model.MentorshipRequest{
		ID:          "req-1",
		RequesterID: 1,
		TargetID:    2,
		Status:      model.MentorshipAccepted,
		Tier:        tierPtr(tier),
	}
}

func fullContactTarget() *model.User {
	u := &model.User{
		Email:       "mentor@example.com",
		LinkedinURL: strPtr("https://linkedin.com/in/mentor"),
		PhoneNumber: strPtr("+86-13800000000"),
	}
	u.ID = 2
	return u
}

func TestResolveContactTiers(t *testing.T) {
	target := fullContactTarget()

	basic := ResolveContact(acceptedRequest(model.TierBasic), 1, target)
	assert.Equal(t, map[string]string{
		"email": "mentor@example.com",
	}, basic)

	advanced := ResolveContact(acceptedRequest(model.TierAdvanced), 1, target)
	assert.Equal(t, map[string]string{
		"email":       "mentor@example.com",
		"linkedinUrl": "https://linkedin.com/in/mentor",
	}, advanced)

	premium := ResolveContact(acceptedRequest(model.TierPremium), 1, target)
	assert.Equal(t, map[string]string{
		"email":       "mentor@example.com",
		"linkedinUrl": "https://linkedin.com/in/mentor",
		"phoneNumber": "+86-13800000000",
	}, premium)

	// 等级严格嵌套：低等级的披露集合是高等级的子集
	for k, v := range basic {
		assert.Equal(t, v, advanced[k])
	}
	for k, v := range advanced {
		assert.Equal(t, v, premium[k])
	}
}

func TestResolveContactMissingFieldsOmitted(t *testing.T) {
	target := &model.User{Email: "mentor@example.com"}
	target.ID = 2

	// Premium 等级但用户没填 LinkedIn 和电话：字段直接省略，不下发空值
	contact := ResolveContact(acceptedRequest(model.TierPremium), 1, target)
	assert.Equal(t, map[string]string{"email": "mentor@example.com"}, contact)
}

func TestResolveContactNonAcceptedStates(t *testing.T) {
	target := fullContactTarget()

	pending := acceptedRequest(model.TierPremium)
	pending.Status = model.MentorshipPending
	assert.Nil(t, ResolveContact(pending, 1, target))

	rejected := acceptedRequest(model.TierPremium)
	rejected.Status = model.MentorshipRejected
	assert.Nil(t, ResolveContact(rejected, 1, target))

	// accepted 但没有等级，同样不披露
	noTier := acceptedRequest(model.TierPremium)
	noTier.Tier = nil
	assert.Nil(t, ResolveContact(noTier, 1, target))
}

func TestResolveContactViewerScoping(t *testing.T) {
	target := fullContactTarget()
	req := acceptedRequest(model.TierPremium)

	// 申请目标自己看不到披露（他本来就是联系方式的主人）
	assert.Nil(t, ResolveContact(req, 2, target))
	// 无关第三方看不到
	assert.Nil(t, ResolveContact(req, 99, target))
	// 只有申请人可见
	assert.NotNil(t, ResolveContact(req, 1, target))
}

func TestResolveContactWrongTarget(t *testing.T) {
	other := fullContactTarget()
	other.ID = 3

	assert.Nil(t, ResolveContact(acceptedRequest(model.TierBasic), 1, other))
}

func TestResolveContactNilInputs(t *testing.T) {
	assert.Nil(t, ResolveContact(nil, 1, fullContactTarget()))
	assert.Nil(t, ResolveContact(acceptedRequest(model.TierBasic), 1, nil))
}
