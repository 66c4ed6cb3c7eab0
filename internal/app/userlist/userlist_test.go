package userlist_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/HubOfCJ/testcase-manager/internal/app/userlist"
	"github.com/HubOfCJ/testcase-manager/internal/log"
	"github.com/HubOfCJ/testcase-manager/internal/model"
	"github.com/HubOfCJ/testcase-manager/internal/storage/storagemock"
)

func TestService_Run(t *testing.T) {
	anna := model.User{ID: "u1", Username: "anna", Email: "anna@example.org", Role: model.RoleAdmin}
	ben := model.User{ID: "u2", Username: "ben", Email: "ben@example.org", Role: model.RoleTester}
	olga := model.User{ID: "u3", Username: "olga", Email: "olga@example.org", Role: model.RoleObserver}

	observer := model.RoleObserver

	tests := map[string]struct {
		mock      func(m *storagemock.MockUserRepository)
		req       userlist.Request
		expResult []model.User
		expErr    bool
	}{
		"list all users without filter": {
			mock: func(m *storagemock.MockUserRepository) {
				m.On("ListUsers", mock.Anything).Once().Return([]model.User{anna, ben, olga}, nil)
			},
			req:       userlist.Request{},
			expResult: []model.User{anna, ben, olga},
		},
		"filter by role": {
			mock: func(m *storagemock.MockUserRepository) {
				m.On("ListUsers", mock.Anything).Once().Return([]model.User{anna, ben, olga}, nil)
			},
			req:       userlist.Request{RoleFilter: &observer},
			expResult: []model.User{olga},
		},
		"repository error should propagate": {
			mock: func(m *storagemock.MockUserRepository) {
				m.On("ListUsers", mock.Anything).Once().Return(nil, fmt.Errorf("directory error"))
			},
			req:    userlist.Request{},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			m := &storagemock.MockUserRepository{}
			test.mock(m)

			svc, err := userlist.NewService(userlist.ServiceConfig{
				UserRepository: m,
				Logger:         log.Noop,
			})
			require.NoError(err)

			result, err := svc.Run(context.Background(), test.req)

			if test.expErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
				assert.Equal(test.expResult, result)
			}

			m.AssertExpectations(t)
		})
	}
}
