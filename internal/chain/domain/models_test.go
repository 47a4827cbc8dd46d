package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleNames(t *testing.T) {
	assert.Equal(t, "Producer", RoleProducer.String())
	assert.Equal(t, "Distributor", RoleDistributor.String())
	assert.Equal(t, "Retailer", RoleRetailer.String())
	assert.Equal(t, "Regulator", RoleRegulator.String())
	assert.Equal(t, "Consumer", RoleConsumer.String())
	assert.Equal(t, "Unknown", Role(9).String())
}

func TestRoleGrantable(t *testing.T) {
	for role := RoleProducer; role < RoleConsumer; role++ {
		assert.True(t, role.Grantable(), role.String())
	}
	assert.False(t, RoleConsumer.Grantable())
	assert.False(t, Role(9).Grantable())
}

func TestStatusNames(t *testing.T) {
	assert.Equal(t, "Created", StatusCreated.String())
	assert.Equal(t, "Delivered", StatusDelivered.String())
	assert.Equal(t, "Unknown", ProductStatus(9).String())
}

func TestClampVerificationType(t *testing.T) {
	assert.Equal(t, VerificationQualityCheck, ClampVerificationType(0))
	assert.Equal(t, VerificationRegulatoryApproval, ClampVerificationType(1))
	assert.Equal(t, VerificationAuthenticity, ClampVerificationType(2))
	assert.Equal(t, VerificationCompliance, ClampVerificationType(3))

	// Out-of-range values clamp to QualityCheck.
	assert.Equal(t, VerificationQualityCheck, ClampVerificationType(4))
	assert.Equal(t, VerificationQualityCheck, ClampVerificationType(255))
}
