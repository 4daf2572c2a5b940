package prayer

import (
	"context"
	"encoding/json"

	"sacredgreeks/models"
	"sacredgreeks/utils"

	"go.uber.org/zap"
)

func (s *DefaultPrayerService) publish(ctx context.Context, ev models.WallEvent) {
	if s.PubSub == nil {
		return
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if err := s.PubSub.Publish(ctx, WallChannel, b).Err(); err != nil {
		utils.GetLogger().Warn("prayer: publish failed", zap.String("type", ev.Type), zap.Error(err))
	}
}

func (s *DefaultPrayerService) Subscribe(ctx context.Context) (<-chan models.WallEvent, error) {
	if s.PubSub == nil {
		return nil, ErrStreamClosed
	}

	sub := s.PubSub.Subscribe(ctx, WallChannel)
	// Wait for the subscription confirmation so no event published after return is missed.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		utils.GetLogger().Error("prayer: subscribe failed", zap.Error(err))
		return nil, ErrStreamClosed
	}

	out := make(chan models.WallEvent, 16)
	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev models.WallEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
