// Package mongo connects to MongoDB with retries and exposes a readiness check.
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, mongo.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	defer db.Client().Disconnect(context.Background())
//
//	ready := mongo.Healthcheck(db.Client())
//
// Configuration is read from MONGODB_* environment variables through Config.
// Connection failures wrap ErrFailedToConnectToMongo and health check failures
// wrap ErrHealthcheckFailed.
package mongo
