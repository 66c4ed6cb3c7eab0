package usercreate_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/HubOfCJ/testcase-manager/internal/app/usercreate"
	"github.com/HubOfCJ/testcase-manager/internal/log"
	"github.com/HubOfCJ/testcase-manager/internal/model"
	"github.com/HubOfCJ/testcase-manager/internal/storage/storagemock"
)

func TestNewService(t *testing.T) {
	svc, err := usercreate.NewService(usercreate.ServiceConfig{})
	require.Error(t, err)
	require.Nil(t, svc)

	svc, err = usercreate.NewService(usercreate.ServiceConfig{
		UserRepository: &storagemock.MockUserRepository{},
	})
	require.NoError(t, err)
	require.NotNil(t, svc)
}

func TestService_Run(t *testing.T) {
	tests := map[string]struct {
		mocks  func(mu *storagemock.MockUserRepository)
		req    usercreate.Request
		expErr error
	}{
		"valid user is created with a minted id": {
			mocks: func(mu *storagemock.MockUserRepository) {
				mu.On("CreateUser", mock.Anything, mock.MatchedBy(func(u model.User) bool {
					return u.ID != "" && u.Email == "anna@example.org" && u.Role == model.RoleAdmin
				})).Once().Return(nil)
			},
			req: usercreate.Request{Username: "anna", Email: "anna@example.org", Role: model.RoleAdmin},
		},
		"missing username is rejected": {
			mocks:  func(mu *storagemock.MockUserRepository) {},
			req:    usercreate.Request{Email: "anna@example.org", Role: model.RoleTester},
			expErr: model.ErrNotValid,
		},
		"invalid email is rejected": {
			mocks:  func(mu *storagemock.MockUserRepository) {},
			req:    usercreate.Request{Username: "anna", Email: "not-an-email", Role: model.RoleTester},
			expErr: model.ErrNotValid,
		},
		"unknown role is rejected": {
			mocks:  func(mu *storagemock.MockUserRepository) {},
			req:    usercreate.Request{Username: "anna", Email: "anna@example.org", Role: "superuser"},
			expErr: model.ErrNotValid,
		},
		"duplicate email propagates already exists": {
			mocks: func(mu *storagemock.MockUserRepository) {
				mu.On("CreateUser", mock.Anything, mock.Anything).Once().
					Return(fmt.Errorf("user anna@example.org: %w", model.ErrAlreadyExists))
			},
			req:    usercreate.Request{Username: "anna", Email: "anna@example.org", Role: model.RoleTester},
			expErr: model.ErrAlreadyExists,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			mu := &storagemock.MockUserRepository{}
			test.mocks(mu)

			svc, err := usercreate.NewService(usercreate.ServiceConfig{
				UserRepository: mu,
				Logger:         log.Noop,
			})
			require.NoError(err)

			user, err := svc.Run(context.Background(), test.req)

			if test.expErr != nil {
				require.Error(err)
				assert.True(errors.Is(err, test.expErr))
			} else {
				require.NoError(err)
				require.NotNil(user)
				assert.NotEmpty(user.ID)
			}

			mu.AssertExpectations(t)
		})
	}
}
