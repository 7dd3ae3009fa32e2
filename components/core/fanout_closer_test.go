package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFanoutCloserCloseReverseOrder(t *testing.T) {
	var order []string

	closer := &FanoutCloser{}
	closer.Add("first", FuncCloser(func() error {
		order = append(order, "first")

		return nil
	}))
	closer.Add("second", FuncCloser(func() error {
		order = append(order, "second")

		return nil
	}))

	require.Nil(t, closer.Close())
	require.Equal(t, []string{"second", "first"}, order)
}

func TestFanoutCloserCloseError(t *testing.T) {
	errFirst := errors.New("first")
	errSecond := errors.New("second")

	calls := 0

	closer := &FanoutCloser{}
	closer.Add("first", FuncCloser(func() error {
		calls++

		return errFirst
	}))
	closer.Add("second", FuncCloser(func() error {
		calls++

		return errSecond
	}))

	require.Equal(t, errSecond, closer.Close())
	require.Equal(t, 2, calls)

	require.Nil(t, closer.Close())
	require.Equal(t, 2, calls)
}
