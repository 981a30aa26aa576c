package service

import (
	"context"

	"github.com/davitkhm/docvault/internal/repo"
)

type HelloService struct {
	Repo *repo.GormRepo
}

func (s *HelloService) Messages(ctx context.Context) ([]string, error) {
	msgs, err := s.Repo.ListMessages(ctx)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return []string{"No messages available"}, nil
	}
	return msgs, nil
}
