package endpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIMUUploadURL(t *testing.T) {
	cases := []struct {
		desc   string
		scheme string
		host   string
		id     string
		want   string
		err    error
	}{
		{
			desc:   "default host",
			scheme: DefaultScheme,
			host:   DefaultHost,
			id:     "my_imu_id",
			want:   "wss://personal-site-oi5a.onrender.com/api/ws/imu/my_imu_id/upload/",
		},
		{
			desc:   "plain ws with port",
			scheme: "ws",
			host:   "127.0.0.1:8080",
			id:     "dev-1",
			want:   "ws://127.0.0.1:8080/api/ws/imu/dev-1/upload/",
		},
		{
			desc:   "id with slash is escaped",
			scheme: DefaultScheme,
			host:   DefaultHost,
			id:     "a/b",
			want:   "wss://personal-site-oi5a.onrender.com/api/ws/imu/a%2Fb/upload/",
		},
		{
			desc:   "empty id",
			scheme: DefaultScheme,
			host:   DefaultHost,
			err:    ErrEmptyID,
		},
		{
			desc:   "empty host",
			scheme: DefaultScheme,
			id:     "my_imu_id",
			err:    ErrEmptyHost,
		},
		{
			desc:   "http scheme",
			scheme: "https",
			host:   DefaultHost,
			id:     "my_imu_id",
			err:    ErrScheme,
		},
	}

	for _, tc := range cases {
		got, err := IMUUploadURL(tc.scheme, tc.host, tc.id)
		if tc.err != nil {
			assert.ErrorIs(t, err, tc.err, tc.desc)
			continue
		}
		assert.NoError(t, err, tc.desc)
		assert.Equal(t, tc.want, got, tc.desc)
	}
}

func TestPingURL(t *testing.T) {
	got, err := PingURL(DefaultScheme, DefaultHost)
	assert.NoError(t, err)
	assert.Equal(t, "wss://personal-site-oi5a.onrender.com/api/ws/ping/", got)

	_, err = PingURL(DefaultScheme, "")
	assert.ErrorIs(t, err, ErrEmptyHost)
}
