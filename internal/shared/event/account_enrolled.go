package event

const AccountEnrolledDestination string = "account_enrolled"
const AccountEnrolledConsumerNotifier string = "account_enrolled_notifier"

type AccountEnrolledMessage struct {
	AccountID       string `json:"account_id"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	ProvisioningURI string `json:"provisioning_uri"`
}
